package model

import (
	"time"

	"gorm.io/gorm"
)

const DefaultTargetHours = 10.0

// StudyPlan tracks study progress against a target number of hours
type StudyPlan struct {
	ID          string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	OwnerID     string         `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Subject     string         `json:"subject" gorm:"type:varchar(255)"`
	Description string         `json:"description" gorm:"type:text"`
	TargetHours float64        `json:"target_hours"`
	LoggedHours float64        `json:"logged_hours"`
	Sessions    []StudySession `json:"sessions" gorm:"foreignKey:PlanID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"-"`
}

// BeforeCreate hook will be called before creating a new StudyPlan record
func (p *StudyPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Sessions == nil {
		p.Sessions = []StudySession{}
	}
	return nil
}

// StudySession is an immutable entry in a plan's session log
type StudySession struct {
	ID              string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	PlanID          string    `json:"-" gorm:"type:varchar(36);index;not null"`
	Position        int       `json:"-"`
	DurationMinutes float64   `json:"duration_minutes"`
	Notes           string    `json:"notes" gorm:"type:text"`
	LoggedAt        time.Time `json:"logged_at"`
}

// BeforeCreate hook will be called before creating a new StudySession record
func (s *StudySession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = newID()
	}
	if s.LoggedAt.IsZero() {
		s.LoggedAt = now()
	}
	return nil
}
