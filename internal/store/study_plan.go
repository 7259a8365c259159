package store

import (
	"context"
	"fmt"
	"time"

	"nexus-service/internal/model"
	"nexus-service/pkg/optional"
	"nexus-service/prometheus"

	"gorm.io/gorm"
)

const studyPlanListLimit = 100

// StudyPlanUpdate carries the fields of a partial study plan update
type StudyPlanUpdate struct {
	Title       optional.Value[string]  `json:"title"`
	Subject     optional.Value[string]  `json:"subject"`
	Description optional.Value[string]  `json:"description"`
	TargetHours optional.Value[float64] `json:"target_hours"`
}

func (u StudyPlanUpdate) columns() map[string]any {
	cols := make(map[string]any)
	setString(cols, "title", u.Title)
	setString(cols, "subject", u.Subject)
	setString(cols, "description", u.Description)
	if hours, ok := u.TargetHours.Get(); ok {
		cols["target_hours"] = hours
	}
	return cols
}

// PlanTotals sums target and logged hours across an owner's plans
type PlanTotals struct {
	Count       int64
	TargetHours float64
	LoggedHours float64
}

// StudyPlanStore handles study plans and their session logs
type StudyPlanStore struct {
	db *gorm.DB
}

func NewStudyPlanStore(db *gorm.DB) *StudyPlanStore {
	return &StudyPlanStore{db: db}
}

func sessionsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create stores a new plan with no logged hours and no sessions
func (s *StudyPlanStore) Create(ctx context.Context, ownerID string, plan *model.StudyPlan) error {
	defer prometheus.TrackDBOperation("study_plan_create")(time.Now())

	plan.ID = ""
	plan.OwnerID = ownerID
	plan.LoggedHours = 0
	plan.Sessions = []model.StudySession{}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("create study plan: %w", err)
	}
	return nil
}

// List returns the owner's plans, oldest first, with their sessions
func (s *StudyPlanStore) List(ctx context.Context, ownerID string) ([]model.StudyPlan, error) {
	defer prometheus.TrackDBOperation("study_plan_list")(time.Now())

	plans := make([]model.StudyPlan, 0)
	if err := s.db.WithContext(ctx).
		Preload("Sessions", sessionsInOrder).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Limit(studyPlanListLimit).
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list study plans: %w", err)
	}
	for i := range plans {
		normalizeSessions(&plans[i])
	}
	return plans, nil
}

// Get returns one of the owner's plans with its sessions
func (s *StudyPlanStore) Get(ctx context.Context, id, ownerID string) (*model.StudyPlan, error) {
	defer prometheus.TrackDBOperation("study_plan_get")(time.Now())

	return s.find(s.db.WithContext(ctx), id, ownerID)
}

func (s *StudyPlanStore) find(db *gorm.DB, id, ownerID string) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	if err := db.Preload("Sessions", sessionsInOrder).Scopes(ownedBy(id, ownerID)).First(&plan).Error; err != nil {
		return nil, wrapFind("find study plan", err)
	}
	normalizeSessions(&plan)
	return &plan, nil
}

// Update merges the set fields into the owner's plan and returns the stored result
func (s *StudyPlanStore) Update(ctx context.Context, id, ownerID string, update StudyPlanUpdate) (*model.StudyPlan, error) {
	defer prometheus.TrackDBOperation("study_plan_update")(time.Now())

	cols := update.columns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("update study plan: %w", Detailed(ErrInvalidArgument, "No fields to update"))
	}

	db := s.db.WithContext(ctx)
	if _, err := s.find(db, id, ownerID); err != nil {
		return nil, err
	}
	if err := db.Model(&model.StudyPlan{}).Scopes(ownedBy(id, ownerID)).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("update study plan: %w", err)
	}
	return s.find(db, id, ownerID)
}

// Delete removes the owner's plan together with its sessions
func (s *StudyPlanStore) Delete(ctx context.Context, id, ownerID string) error {
	defer prometheus.TrackDBOperation("study_plan_delete")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(ownedBy(id, ownerID)).Delete(&model.StudyPlan{})
		if result.Error != nil {
			return fmt.Errorf("delete study plan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete study plan: %w", ErrNotFound)
		}
		if err := tx.Where("plan_id = ?", id).Delete(&model.StudySession{}).Error; err != nil {
			return fmt.Errorf("delete study sessions: %w", err)
		}
		return nil
	})
}

// LogSession appends a session to the owner's plan and adds its duration to
// logged_hours in the same transaction. Durations are not validated.
func (s *StudyPlanStore) LogSession(ctx context.Context, id, ownerID string, durationMinutes float64, notes string) (*model.StudyPlan, error) {
	defer prometheus.TrackDBOperation("study_plan_log_session")(time.Now())

	var plan *model.StudyPlan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&model.StudyPlan{}).Scopes(ownedBy(id, ownerID)).Count(&owned).Error; err != nil {
			return fmt.Errorf("log session: %w", err)
		}
		if owned == 0 {
			return fmt.Errorf("log session: %w", ErrNotFound)
		}

		var position int64
		if err := tx.Model(&model.StudySession{}).Where("plan_id = ?", id).Count(&position).Error; err != nil {
			return fmt.Errorf("log session: %w", err)
		}

		session := model.StudySession{
			PlanID:          id,
			Position:        int(position),
			DurationMinutes: durationMinutes,
			Notes:           notes,
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("append session: %w", err)
		}

		if err := tx.Model(&model.StudyPlan{}).
			Scopes(ownedBy(id, ownerID)).
			Update("logged_hours", gorm.Expr("logged_hours + ?", durationMinutes/60)).Error; err != nil {
			return fmt.Errorf("add logged hours: %w", err)
		}

		var err error
		plan, err = s.find(tx, id, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Totals aggregates the owner's plans for the dashboard
func (s *StudyPlanStore) Totals(ctx context.Context, ownerID string) (PlanTotals, error) {
	defer prometheus.TrackDBOperation("study_plan_totals")(time.Now())

	var totals PlanTotals
	row := s.db.WithContext(ctx).
		Model(&model.StudyPlan{}).
		Select("COUNT(*), COALESCE(SUM(target_hours), 0), COALESCE(SUM(logged_hours), 0)").
		Where("owner_id = ?", ownerID).
		Row()
	if err := row.Scan(&totals.Count, &totals.TargetHours, &totals.LoggedHours); err != nil {
		return PlanTotals{}, fmt.Errorf("sum study plans: %w", err)
	}
	return totals, nil
}

func normalizeSessions(plan *model.StudyPlan) {
	if plan.Sessions == nil {
		plan.Sessions = []model.StudySession{}
	}
}
