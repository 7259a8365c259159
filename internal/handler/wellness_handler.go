package handler

import (
	"net/http"

	"nexus-service/internal/model"
	"nexus-service/pkg/logger"
	"nexus-service/pkg/optional"
	"nexus-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WellnessLogRequest is the body of POST /api/wellness/logs
type WellnessLogRequest struct {
	LogType string  `json:"log_type"`
	Value   float64 `json:"value"`
	Notes   string  `json:"notes"`
}

// PomodoroRequest is the body of POST /api/wellness/pomodoro
type PomodoroRequest struct {
	DurationMinutes optional.Value[int] `json:"duration_minutes"`
}

func (h *Handler) CreateWellnessLog(c echo.Context) error {
	log := logger.FromContext(c)

	var req WellnessLogRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid wellness payload", zap.Error(err))
		return badRequest(c, "Invalid request data")
	}

	entry := model.WellnessLog{
		LogType: req.LogType,
		Value:   req.Value,
		Notes:   req.Notes,
	}
	if err := h.stores.Wellness.Create(c.Request().Context(), ownerID(c), &entry); err != nil {
		return fail(c, err, "Wellness log")
	}

	prometheus.RecordEntityOperation("wellness_log", "create")
	return c.JSON(http.StatusOK, entry)
}

// ListWellnessLogs lists the caller's logs, optionally filtered by ?log_type
func (h *Handler) ListWellnessLogs(c echo.Context) error {
	logs, err := h.stores.Wellness.List(c.Request().Context(), ownerID(c), c.QueryParam("log_type"))
	if err != nil {
		return fail(c, err, "Wellness log")
	}
	return c.JSON(http.StatusOK, logs)
}

// CompletePomodoro records a finished focus session (25 minutes unless given)
func (h *Handler) CompletePomodoro(c echo.Context) error {
	log := logger.FromContext(c)

	var req PomodoroRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid pomodoro payload", zap.Error(err))
		return badRequest(c, "Invalid request data")
	}

	session := model.PomodoroSession{
		DurationMinutes: req.DurationMinutes.OrElse(model.DefaultPomodoroMinutes),
	}
	if err := h.stores.Pomodoros.Create(c.Request().Context(), ownerID(c), &session); err != nil {
		return fail(c, err, "Pomodoro session")
	}

	prometheus.RecordEntityOperation("pomodoro", "create")
	return c.JSON(http.StatusOK, session)
}

func (h *Handler) ListPomodoros(c echo.Context) error {
	sessions, err := h.stores.Pomodoros.List(c.Request().Context(), ownerID(c))
	if err != nil {
		return fail(c, err, "Pomodoro session")
	}
	return c.JSON(http.StatusOK, sessions)
}
