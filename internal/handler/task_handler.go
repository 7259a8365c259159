package handler

import (
	"net/http"
	"strings"

	"nexus-service/internal/model"
	"nexus-service/internal/store"
	"nexus-service/pkg/logger"
	"nexus-service/pkg/optional"
	"nexus-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TaskRequest is the body of POST /api/tasks
type TaskRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Category    optional.Value[string] `json:"category"`
	Priority    optional.Value[string] `json:"priority"`
	DueDate     *string                `json:"due_date"`
}

// ReorderRequest is the body of PUT /api/tasks/reorder/batch
type ReorderRequest struct {
	TaskIDs []string `json:"task_ids"`
}

// CreateTask appends a task to the caller's list
func (h *Handler) CreateTask(c echo.Context) error {
	log := logger.FromContext(c)

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid task payload", zap.Error(err))
		return badRequest(c, "Invalid request data")
	}
	if strings.TrimSpace(req.Title) == "" {
		return badRequest(c, "title is required")
	}

	task := model.Task{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category.OrElse(model.DefaultTaskCategory),
		Priority:    req.Priority.OrElse(model.DefaultTaskPriority),
		DueDate:     req.DueDate,
	}
	if err := h.stores.Tasks.Create(c.Request().Context(), ownerID(c), &task); err != nil {
		return fail(c, err, "Task")
	}

	prometheus.RecordEntityOperation("task", "create")
	log.Info("Task created", zap.String("task_id", task.ID), zap.Int("order", task.Order))
	return c.JSON(http.StatusOK, task)
}

// ListTasks lists the caller's tasks; ?status filters, "all" disables the filter
func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.stores.Tasks.List(c.Request().Context(), ownerID(c), c.QueryParam("status"))
	if err != nil {
		return fail(c, err, "Task")
	}
	return c.JSON(http.StatusOK, tasks)
}

// UpdateTask applies a partial update
func (h *Handler) UpdateTask(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var update store.TaskUpdate
	if err := c.Bind(&update); err != nil {
		log.Warn("Invalid task update payload", zap.String("task_id", id), zap.Error(err))
		return badRequest(c, "Invalid request data")
	}

	task, err := h.stores.Tasks.Update(c.Request().Context(), id, ownerID(c), update)
	if err != nil {
		return fail(c, err, "Task")
	}

	prometheus.RecordEntityOperation("task", "update")
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes one of the caller's tasks
func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if err := h.stores.Tasks.Delete(c.Request().Context(), id, ownerID(c)); err != nil {
		return fail(c, err, "Task")
	}

	prometheus.RecordEntityOperation("task", "delete")
	logger.FromContext(c).Info("Task deleted", zap.String("task_id", id))
	return success(c)
}

// ReorderTasks assigns each listed task its position in task_ids
func (h *Handler) ReorderTasks(c echo.Context) error {
	log := logger.FromContext(c)

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid reorder payload", zap.Error(err))
		return badRequest(c, "Invalid request data")
	}

	if err := h.stores.Tasks.Reorder(c.Request().Context(), ownerID(c), req.TaskIDs); err != nil {
		return fail(c, err, "Task")
	}

	prometheus.RecordEntityOperation("task", "reorder")
	log.Info("Tasks reordered", zap.Int("count", len(req.TaskIDs)))
	return success(c)
}
