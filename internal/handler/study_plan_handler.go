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

// StudyPlanRequest is the body of POST /api/study-plans
type StudyPlanRequest struct {
	Title       string                  `json:"title"`
	Subject     string                  `json:"subject"`
	Description string                  `json:"description"`
	TargetHours optional.Value[float64] `json:"target_hours"`
}

// LogSessionRequest is the body of POST /api/study-plans/:id/log-session
type LogSessionRequest struct {
	DurationMinutes float64 `json:"duration_minutes"`
	Notes           string  `json:"notes"`
}

func (h *Handler) CreateStudyPlan(c echo.Context) error {
	log := logger.FromContext(c)

	var req StudyPlanRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid study plan payload", zap.Error(err))
		return badRequest(c, "Invalid request data")
	}
	if strings.TrimSpace(req.Title) == "" {
		return badRequest(c, "title is required")
	}

	plan := model.StudyPlan{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		TargetHours: req.TargetHours.OrElse(model.DefaultTargetHours),
	}
	if err := h.stores.Plans.Create(c.Request().Context(), ownerID(c), &plan); err != nil {
		return fail(c, err, "Study plan")
	}

	prometheus.RecordEntityOperation("study_plan", "create")
	log.Info("Study plan created", zap.String("plan_id", plan.ID))
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) ListStudyPlans(c echo.Context) error {
	plans, err := h.stores.Plans.List(c.Request().Context(), ownerID(c))
	if err != nil {
		return fail(c, err, "Study plan")
	}
	return c.JSON(http.StatusOK, plans)
}

func (h *Handler) UpdateStudyPlan(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var update store.StudyPlanUpdate
	if err := c.Bind(&update); err != nil {
		log.Warn("Invalid study plan update payload", zap.String("plan_id", id), zap.Error(err))
		return badRequest(c, "Invalid request data")
	}

	plan, err := h.stores.Plans.Update(c.Request().Context(), id, ownerID(c), update)
	if err != nil {
		return fail(c, err, "Study plan")
	}

	prometheus.RecordEntityOperation("study_plan", "update")
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) DeleteStudyPlan(c echo.Context) error {
	id := c.Param("id")
	if err := h.stores.Plans.Delete(c.Request().Context(), id, ownerID(c)); err != nil {
		return fail(c, err, "Study plan")
	}

	prometheus.RecordEntityOperation("study_plan", "delete")
	logger.FromContext(c).Info("Study plan deleted", zap.String("plan_id", id))
	return success(c)
}

// LogStudySession appends a session and returns the updated plan
func (h *Handler) LogStudySession(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req LogSessionRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid log session payload", zap.String("plan_id", id), zap.Error(err))
		return badRequest(c, "Invalid request data")
	}

	plan, err := h.stores.Plans.LogSession(c.Request().Context(), id, ownerID(c), req.DurationMinutes, req.Notes)
	if err != nil {
		return fail(c, err, "Study plan")
	}

	prometheus.RecordEntityOperation("study_session", "create")
	log.Info("Study session logged",
		zap.String("plan_id", id),
		zap.Float64("duration_minutes", req.DurationMinutes),
		zap.Float64("logged_hours", plan.LoggedHours))
	return c.JSON(http.StatusOK, plan)
}
