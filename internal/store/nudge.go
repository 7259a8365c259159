package store

import (
	"context"
	"fmt"
	"time"

	"nexus-service/internal/model"
	"nexus-service/prometheus"

	"gorm.io/gorm"
)

const nudgeHistoryLimit = 20

// NudgeStore keeps the history of generated nudges
type NudgeStore struct {
	db *gorm.DB
}

func NewNudgeStore(db *gorm.DB) *NudgeStore {
	return &NudgeStore{db: db}
}

func (s *NudgeStore) Create(ctx context.Context, ownerID string, nudge *model.Nudge) error {
	defer prometheus.TrackDBOperation("nudge_create")(time.Now())

	nudge.ID = ""
	nudge.OwnerID = ownerID
	if err := s.db.WithContext(ctx).Create(nudge).Error; err != nil {
		return fmt.Errorf("create nudge: %w", err)
	}
	return nil
}

// History returns the owner's most recent nudges, newest first
func (s *NudgeStore) History(ctx context.Context, ownerID string) ([]model.Nudge, error) {
	defer prometheus.TrackDBOperation("nudge_history")(time.Now())

	nudges := make([]model.Nudge, 0)
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(nudgeHistoryLimit).
		Find(&nudges).Error; err != nil {
		return nil, fmt.Errorf("nudge history: %w", err)
	}
	return nudges, nil
}
