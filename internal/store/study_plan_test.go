package store

import (
	"context"
	"testing"

	"nexus-service/internal/model"
	"nexus-service/internal/testutil"
	"nexus-service/pkg/optional"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPlan(t *testing.T, s *StudyPlanStore, owner, title string, target float64) model.StudyPlan {
	t.Helper()
	plan := model.StudyPlan{Title: title, Subject: "math", TargetHours: target}
	require.NoError(t, s.Create(context.Background(), owner, &plan))
	return plan
}

func TestStudyPlanStore_LogSessionAccumulatesHours(t *testing.T) {
	ctx := context.Background()
	s := NewStudyPlanStore(testutil.NewDB(t))
	plan := createPlan(t, s, "alice", "calculus", 10)
	assert.Empty(t, plan.Sessions)

	_, err := s.LogSession(ctx, plan.ID, "alice", 30, "limits")
	require.NoError(t, err)
	updated, err := s.LogSession(ctx, plan.ID, "alice", 90, "derivatives")
	require.NoError(t, err)

	assert.InDelta(t, 2.0, updated.LoggedHours, 1e-9)
	require.Len(t, updated.Sessions, 2)
	assert.Equal(t, "limits", updated.Sessions[0].Notes)
	assert.Equal(t, 30.0, updated.Sessions[0].DurationMinutes)
	assert.Equal(t, "derivatives", updated.Sessions[1].Notes)
	assert.False(t, updated.Sessions[1].LoggedAt.IsZero())
}

func TestStudyPlanStore_LogSessionCrossOwner(t *testing.T) {
	ctx := context.Background()
	s := NewStudyPlanStore(testutil.NewDB(t))
	plan := createPlan(t, s, "alice", "calculus", 10)

	_, err := s.LogSession(ctx, plan.ID, "bob", 30, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.LogSession(ctx, "missing", "alice", 30, "")
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := s.Get(ctx, plan.ID, "alice")
	require.NoError(t, err)
	assert.Zero(t, stored.LoggedHours)
	assert.Empty(t, stored.Sessions)
}

func TestStudyPlanStore_ListAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewStudyPlanStore(testutil.NewDB(t))
	first := createPlan(t, s, "alice", "calculus", 10)
	createPlan(t, s, "alice", "physics", 5)
	createPlan(t, s, "bob", "history", 3)

	plans, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "calculus", plans[0].Title)
	assert.NotNil(t, plans[0].Sessions)

	updated, err := s.Update(ctx, first.ID, "alice", StudyPlanUpdate{TargetHours: optional.Of(20.0)})
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.TargetHours)
	assert.Equal(t, "calculus", updated.Title)

	_, err = s.Update(ctx, first.ID, "alice", StudyPlanUpdate{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Update(ctx, first.ID, "bob", StudyPlanUpdate{Title: optional.Of("mine")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudyPlanStore_DeleteRemovesSessions(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	s := NewStudyPlanStore(db)
	plan := createPlan(t, s, "alice", "calculus", 10)
	_, err := s.LogSession(ctx, plan.ID, "alice", 45, "")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, plan.ID, "bob"), ErrNotFound)
	require.NoError(t, s.Delete(ctx, plan.ID, "alice"))
	assert.ErrorIs(t, s.Delete(ctx, plan.ID, "alice"), ErrNotFound)

	var sessions int64
	require.NoError(t, db.Model(&model.StudySession{}).Where("plan_id = ?", plan.ID).Count(&sessions).Error)
	assert.Zero(t, sessions)

	_, err = s.Get(ctx, plan.ID, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudyPlanStore_Totals(t *testing.T) {
	ctx := context.Background()
	s := NewStudyPlanStore(testutil.NewDB(t))

	empty, err := s.Totals(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, PlanTotals{}, empty)

	a := createPlan(t, s, "alice", "calculus", 10)
	createPlan(t, s, "alice", "physics", 6)
	_, err = s.LogSession(ctx, a.ID, "alice", 120, "")
	require.NoError(t, err)

	totals, err := s.Totals(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, totals.Count)
	assert.InDelta(t, 16.0, totals.TargetHours, 1e-9)
	assert.InDelta(t, 2.0, totals.LoggedHours, 1e-9)
}
