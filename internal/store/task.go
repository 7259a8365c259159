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

const taskListLimit = 500

// TaskUpdate carries the fields of a partial task update. Unset fields are left untouched.
type TaskUpdate struct {
	Title       optional.Value[string] `json:"title"`
	Description optional.Value[string] `json:"description"`
	Category    optional.Value[string] `json:"category"`
	Priority    optional.Value[string] `json:"priority"`
	Status      optional.Value[string] `json:"status"`
	DueDate     optional.Value[string] `json:"due_date"`
	Order       optional.Value[int]    `json:"order"`
}

func (u TaskUpdate) columns() map[string]any {
	cols := make(map[string]any)
	setString(cols, "title", u.Title)
	setString(cols, "description", u.Description)
	setString(cols, "category", u.Category)
	setString(cols, "priority", u.Priority)
	setString(cols, "status", u.Status)
	setString(cols, "due_date", u.DueDate)
	if order, ok := u.Order.Get(); ok {
		cols["sort_order"] = order
	}
	return cols
}

func setString(cols map[string]any, column string, v optional.Value[string]) {
	if value, ok := v.Get(); ok {
		cols[column] = value
	}
}

// TaskStore handles CRUD and ordering for tasks
type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Create appends a task at the end of the owner's list. The order is the
// owner's task count at the time of the call, so concurrent creates may
// share an order value.
func (s *TaskStore) Create(ctx context.Context, ownerID string, task *model.Task) error {
	defer prometheus.TrackDBOperation("task_create")(time.Now())

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.Task{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}

	task.ID = ""
	task.OwnerID = ownerID
	task.Status = model.TaskStatusActive
	task.Order = int(count)
	if err := db.Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// List returns the owner's tasks by ascending order. An empty status or "all" disables the filter.
func (s *TaskStore) List(ctx context.Context, ownerID, status string) ([]model.Task, error) {
	defer prometheus.TrackDBOperation("task_list")(time.Now())

	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !isAll(status) {
		query = query.Where("status = ?", status)
	}

	tasks := make([]model.Task, 0)
	if err := query.Order("sort_order ASC, created_at ASC").Limit(taskListLimit).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListActive returns up to limit active tasks by ascending order
func (s *TaskStore) ListActive(ctx context.Context, ownerID string, limit int) ([]model.Task, error) {
	defer prometheus.TrackDBOperation("task_list_active")(time.Now())

	tasks := make([]model.Task, 0, limit)
	if err := s.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, model.TaskStatusActive).
		Order("sort_order ASC, created_at ASC").
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list active tasks: %w", err)
	}
	return tasks, nil
}

// Update merges the set fields of update into the owner's task and returns the stored result
func (s *TaskStore) Update(ctx context.Context, id, ownerID string, update TaskUpdate) (*model.Task, error) {
	defer prometheus.TrackDBOperation("task_update")(time.Now())

	cols := update.columns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("update task: %w", Detailed(ErrInvalidArgument, "No fields to update"))
	}

	db := s.db.WithContext(ctx)

	var task model.Task
	if err := db.Scopes(ownedBy(id, ownerID)).First(&task).Error; err != nil {
		return nil, wrapFind("update task", err)
	}
	if err := db.Model(&model.Task{}).Scopes(ownedBy(id, ownerID)).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if err := db.Scopes(ownedBy(id, ownerID)).First(&task).Error; err != nil {
		return nil, wrapFind("reload task", err)
	}
	return &task, nil
}

// Delete removes the owner's task. Remaining tasks keep their order values.
func (s *TaskStore) Delete(ctx context.Context, id, ownerID string) error {
	defer prometheus.TrackDBOperation("task_delete")(time.Now())

	result := s.db.WithContext(ctx).Scopes(ownedBy(id, ownerID)).Delete(&model.Task{})
	if result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete task: %w", ErrNotFound)
	}
	return nil
}

// Reorder sets order = i for the i-th id. Ids the owner does not own are
// skipped, and owned tasks missing from ids keep their current order.
// Each id is a separate statement; a failure part way leaves earlier
// positions applied.
func (s *TaskStore) Reorder(ctx context.Context, ownerID string, ids []string) error {
	defer prometheus.TrackDBOperation("task_reorder")(time.Now())

	db := s.db.WithContext(ctx)
	for i, id := range ids {
		if err := db.Model(&model.Task{}).
			Scopes(ownedBy(id, ownerID)).
			Update("sort_order", i).Error; err != nil {
			return fmt.Errorf("reorder task %s: %w", id, err)
		}
	}
	return nil
}

// Counts returns the owner's total and completed task counts
func (s *TaskStore) Counts(ctx context.Context, ownerID string) (total, completed int64, err error) {
	defer prometheus.TrackDBOperation("task_count")(time.Now())

	db := s.db.WithContext(ctx)
	if err = db.Model(&model.Task{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count tasks: %w", err)
	}
	if err = db.Model(&model.Task{}).
		Where("owner_id = ? AND status = ?", ownerID, model.TaskStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return total, completed, nil
}
