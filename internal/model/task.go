package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusActive    = "active"
	TaskStatusCompleted = "completed"

	DefaultTaskCategory = "General"
	DefaultTaskPriority = "medium"
)

// Task is a single to-do item. Order is owner-scoped and drives list ordering.
type Task struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	OwnerID     string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	Priority    string    `json:"priority" gorm:"type:varchar(20)"`
	Status      string    `json:"status" gorm:"type:varchar(20);index"`
	DueDate     *string   `json:"due_date" gorm:"type:varchar(40)"`
	Order       int       `json:"order" gorm:"column:sort_order;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// BeforeCreate hook will be called before creating a new Task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}
