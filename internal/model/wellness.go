package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	WellnessWater    = "water"
	WellnessMood     = "mood"
	WellnessExercise = "exercise"
	WellnessSleep    = "sleep"

	DefaultPomodoroMinutes = 25
)

// IsWellnessType reports whether logType is a known wellness log type
func IsWellnessType(logType string) bool {
	switch logType {
	case WellnessWater, WellnessMood, WellnessExercise, WellnessSleep:
		return true
	}
	return false
}

// WellnessLog records a single wellness measurement
type WellnessLog struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	OwnerID   string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	LogType   string    `json:"log_type" gorm:"type:varchar(20);index;not null"`
	Value     float64   `json:"value"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate hook will be called before creating a new WellnessLog record
func (w *WellnessLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = newID()
	}
	return nil
}

// PomodoroSession records a completed focus interval
type PomodoroSession struct {
	ID              string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	OwnerID         string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	DurationMinutes int       `json:"duration_minutes"`
	CompletedAt     time.Time `json:"completed_at" gorm:"index"`
}

// BeforeCreate hook will be called before creating a new PomodoroSession record
func (p *PomodoroSession) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CompletedAt.IsZero() {
		p.CompletedAt = now()
	}
	return nil
}
