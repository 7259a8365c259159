package store

import (
	"context"
	"encoding/json"
	"testing"

	"nexus-service/internal/model"
	"nexus-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTasks(t *testing.T, s *TaskStore, owner string, titles ...string) []model.Task {
	t.Helper()
	tasks := make([]model.Task, 0, len(titles))
	for _, title := range titles {
		task := model.Task{Title: title, Category: model.DefaultTaskCategory, Priority: model.DefaultTaskPriority}
		require.NoError(t, s.Create(context.Background(), owner, &task))
		tasks = append(tasks, task)
	}
	return tasks
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestTaskStore_CreateAssignsOrderPerOwner(t *testing.T) {
	s := NewTaskStore(testutil.NewDB(t))

	alice := createTasks(t, s, "alice", "a", "b", "c")
	bob := createTasks(t, s, "bob", "x")

	for i, task := range alice {
		assert.Equal(t, i, task.Order)
		assert.Equal(t, model.TaskStatusActive, task.Status)
		assert.Equal(t, "alice", task.OwnerID)
		assert.NotEmpty(t, task.ID)
	}
	assert.Equal(t, 0, bob[0].Order)
}

func TestTaskStore_ListFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore(testutil.NewDB(t))
	tasks := createTasks(t, s, "alice", "a", "b", "c")

	done := TaskUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"completed"}`), &done))
	_, err := s.Update(ctx, tasks[1].ID, "alice", done)
	require.NoError(t, err)

	all, err := s.List(ctx, "alice", "all")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, titles(all))

	unfiltered, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, unfiltered, 3)

	completed, err := s.List(ctx, "alice", model.TaskStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, titles(completed))

	active, err := s.ListActive(ctx, "alice", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, titles(active))

	none, err := s.List(ctx, "bob", "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTaskStore_Reorder(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore(testutil.NewDB(t))
	tasks := createTasks(t, s, "alice", "a", "b", "c")
	foreign := createTasks(t, s, "bob", "x")

	require.NoError(t, s.Reorder(ctx, "alice", []string{tasks[2].ID, tasks[0].ID, tasks[1].ID}))

	listed, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, titles(listed))
	for i, task := range listed {
		assert.Equal(t, i, task.Order)
	}

	// ids owned by someone else are skipped
	require.NoError(t, s.Reorder(ctx, "alice", []string{foreign[0].ID}))
	bobs, err := s.List(ctx, "bob", "")
	require.NoError(t, err)
	assert.Equal(t, 0, bobs[0].Order)
}

func TestTaskStore_ReorderSubsetKeepsOmittedOrder(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore(testutil.NewDB(t))
	tasks := createTasks(t, s, "alice", "a", "b", "c")

	require.NoError(t, s.Reorder(ctx, "alice", []string{tasks[1].ID}))

	listed, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	orders := map[string]int{}
	for _, task := range listed {
		orders[task.Title] = task.Order
	}
	assert.Equal(t, map[string]int{"a": 0, "b": 0, "c": 2}, orders)
}

func TestTaskStore_Update(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore(testutil.NewDB(t))
	task := createTasks(t, s, "alice", "write report")[0]

	var update TaskUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title":"write final report","description":null,"order":7}`), &update))

	updated, err := s.Update(ctx, task.ID, "alice", update)
	require.NoError(t, err)
	assert.Equal(t, "write final report", updated.Title)
	assert.Equal(t, 7, updated.Order)
	assert.Equal(t, model.DefaultTaskCategory, updated.Category)
	assert.Equal(t, model.TaskStatusActive, updated.Status)

	var clearDesc TaskUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"description":""}`), &clearDesc))
	_, err = s.Update(ctx, task.ID, "alice", clearDesc)
	require.NoError(t, err)
}

func TestTaskStore_UpdateRejectsEmptyPatch(t *testing.T) {
	s := NewTaskStore(testutil.NewDB(t))
	task := createTasks(t, s, "alice", "a")[0]

	var update TaskUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &update))

	_, err := s.Update(context.Background(), task.ID, "alice", update)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTaskStore_CrossOwnerIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore(testutil.NewDB(t))
	task := createTasks(t, s, "alice", "a")[0]

	var update TaskUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title":"stolen"}`), &update))

	_, err := s.Update(ctx, task.ID, "bob", update)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, task.ID, "bob"), ErrNotFound)

	listed, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "a", listed[0].Title)
}

func TestTaskStore_DeleteLeavesGaps(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore(testutil.NewDB(t))
	tasks := createTasks(t, s, "alice", "a", "b", "c")

	require.NoError(t, s.Delete(ctx, tasks[1].ID, "alice"))
	assert.ErrorIs(t, s.Delete(ctx, tasks[1].ID, "alice"), ErrNotFound)

	listed, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 0, listed[0].Order)
	assert.Equal(t, 2, listed[1].Order)

	// the counter is count based, so the next task reuses order 2
	next := createTasks(t, s, "alice", "d")[0]
	assert.Equal(t, 2, next.Order)
}

func TestTaskStore_Counts(t *testing.T) {
	ctx := context.Background()
	s := NewTaskStore(testutil.NewDB(t))
	tasks := createTasks(t, s, "alice", "a", "b")
	createTasks(t, s, "bob", "x")

	var done TaskUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"status":"completed"}`), &done))
	_, err := s.Update(ctx, tasks[0].ID, "alice", done)
	require.NoError(t, err)

	total, completed, err := s.Counts(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.EqualValues(t, 1, completed)
}
