package store

import (
	"context"
	"fmt"
	"time"

	"nexus-service/internal/model"
	"nexus-service/prometheus"

	"gorm.io/gorm"
)

const (
	wellnessListLimit = 100
	pomodoroListLimit = 100
)

// WellnessStore handles wellness logs
type WellnessStore struct {
	db *gorm.DB
}

func NewWellnessStore(db *gorm.DB) *WellnessStore {
	return &WellnessStore{db: db}
}

// Create stores a wellness log. Unknown log types are rejected.
func (s *WellnessStore) Create(ctx context.Context, ownerID string, entry *model.WellnessLog) error {
	defer prometheus.TrackDBOperation("wellness_create")(time.Now())

	if !model.IsWellnessType(entry.LogType) {
		return fmt.Errorf("create wellness log: %w", Detailed(ErrInvalidArgument, "Invalid log_type, expected one of water, mood, exercise, sleep"))
	}

	entry.ID = ""
	entry.OwnerID = ownerID
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create wellness log: %w", err)
	}
	return nil
}

// List returns the owner's logs, newest first, optionally of one type
func (s *WellnessStore) List(ctx context.Context, ownerID, logType string) ([]model.WellnessLog, error) {
	defer prometheus.TrackDBOperation("wellness_list")(time.Now())

	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if logType != "" {
		query = query.Where("log_type = ?", logType)
	}
	return s.find(query, wellnessListLimit)
}

// Recent returns the owner's n most recent logs of any type
func (s *WellnessStore) Recent(ctx context.Context, ownerID string, n int) ([]model.WellnessLog, error) {
	defer prometheus.TrackDBOperation("wellness_recent")(time.Now())

	return s.find(s.db.WithContext(ctx).Where("owner_id = ?", ownerID), n)
}

func (s *WellnessStore) find(query *gorm.DB, limit int) ([]model.WellnessLog, error) {
	logs := make([]model.WellnessLog, 0)
	if err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list wellness logs: %w", err)
	}
	return logs, nil
}

// SumBetween totals the values of the owner's logs of logType created in [from, to)
func (s *WellnessStore) SumBetween(ctx context.Context, ownerID, logType string, from, to time.Time) (float64, error) {
	defer prometheus.TrackDBOperation("wellness_sum")(time.Now())

	var total float64
	row := s.db.WithContext(ctx).
		Model(&model.WellnessLog{}).
		Select("COALESCE(SUM(value), 0)").
		Where("owner_id = ? AND log_type = ? AND created_at >= ? AND created_at < ?", ownerID, logType, from.UTC(), to.UTC()).
		Row()
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("sum wellness logs: %w", err)
	}
	return total, nil
}

// PomodoroStore handles completed pomodoro sessions
type PomodoroStore struct {
	db *gorm.DB
}

func NewPomodoroStore(db *gorm.DB) *PomodoroStore {
	return &PomodoroStore{db: db}
}

func (s *PomodoroStore) Create(ctx context.Context, ownerID string, session *model.PomodoroSession) error {
	defer prometheus.TrackDBOperation("pomodoro_create")(time.Now())

	session.ID = ""
	session.OwnerID = ownerID
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create pomodoro session: %w", err)
	}
	return nil
}

// List returns the owner's sessions, most recently completed first
func (s *PomodoroStore) List(ctx context.Context, ownerID string) ([]model.PomodoroSession, error) {
	defer prometheus.TrackDBOperation("pomodoro_list")(time.Now())

	sessions := make([]model.PomodoroSession, 0)
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("completed_at DESC").
		Limit(pomodoroListLimit).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list pomodoro sessions: %w", err)
	}
	return sessions, nil
}

// CountBetween counts the owner's sessions completed in [from, to)
func (s *PomodoroStore) CountBetween(ctx context.Context, ownerID string, from, to time.Time) (int64, error) {
	defer prometheus.TrackDBOperation("pomodoro_count")(time.Now())

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&model.PomodoroSession{}).
		Where("owner_id = ? AND completed_at >= ? AND completed_at < ?", ownerID, from.UTC(), to.UTC()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count pomodoro sessions: %w", err)
	}
	return count, nil
}
