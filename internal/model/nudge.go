package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	NudgeCategoryAI       = "ai"
	NudgeCategoryGeneral  = "general"
	NudgeCategoryFallback = "fallback"
)

// Nudge is a coaching message. Only AI nudges are persisted.
type Nudge struct {
	ID        string    `json:"id,omitempty" gorm:"type:varchar(36);primaryKey"`
	OwnerID   string    `json:"user_id,omitempty" gorm:"type:varchar(36);index;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Category  string    `json:"category" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate hook will be called before creating a new Nudge record
func (n *Nudge) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = newID()
	}
	return nil
}
