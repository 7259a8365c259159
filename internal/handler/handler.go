package handler

import (
	"errors"
	"net/http"

	"nexus-service/internal/middleware"
	"nexus-service/internal/service"
	"nexus-service/internal/store"
	"nexus-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler serves the HTTP API over the services and stores
type Handler struct {
	db        *gorm.DB
	stores    *store.Stores
	auth      *service.AuthService
	dashboard *service.DashboardService
	nudges    *service.NudgeService
}

func New(db *gorm.DB, stores *store.Stores, auth *service.AuthService, dashboard *service.DashboardService, nudges *service.NudgeService) *Handler {
	return &Handler{
		db:        db,
		stores:    stores,
		auth:      auth,
		dashboard: dashboard,
		nudges:    nudges,
	}
}

// Register mounts every route on e. nudgeLimit guards nudge generation.
func (h *Handler) Register(e *echo.Echo, nudgeLimit echo.MiddlewareFunc) {
	// Public routes - no authentication required
	e.GET("/", h.Hello)
	e.GET("/health", h.HealthCheck)

	api := e.Group("/api")
	api.POST("/auth/register", h.RegisterUser)
	api.POST("/auth/login", h.Login)

	// Everything below requires a bearer token
	protected := api.Group("", middleware.AuthMiddleware(h.auth))
	protected.GET("/auth/me", h.Me)

	protected.POST("/tasks", h.CreateTask)
	protected.GET("/tasks", h.ListTasks)
	protected.PUT("/tasks/reorder/batch", h.ReorderTasks)
	protected.PUT("/tasks/:id", h.UpdateTask)
	protected.DELETE("/tasks/:id", h.DeleteTask)

	protected.POST("/study-plans", h.CreateStudyPlan)
	protected.GET("/study-plans", h.ListStudyPlans)
	protected.PUT("/study-plans/:id", h.UpdateStudyPlan)
	protected.DELETE("/study-plans/:id", h.DeleteStudyPlan)
	protected.POST("/study-plans/:id/log-session", h.LogStudySession)

	protected.POST("/resources", h.CreateResource)
	protected.GET("/resources", h.ListResources)
	protected.DELETE("/resources/:id", h.DeleteResource)

	protected.POST("/wellness/logs", h.CreateWellnessLog)
	protected.GET("/wellness/logs", h.ListWellnessLogs)
	protected.POST("/wellness/pomodoro", h.CompletePomodoro)
	protected.GET("/wellness/pomodoro", h.ListPomodoros)

	protected.GET("/dashboard/stats", h.DashboardStats)

	protected.POST("/ai/nudge", h.GenerateNudge, nudgeLimit)
	protected.GET("/ai/nudges", h.NudgeHistory)
}

// ownerID returns the caller id set by the auth middleware
func ownerID(c echo.Context) string {
	identity, _ := middleware.GetIdentity(c)
	return identity.UserID
}

func badRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"detail": detail})
}

// fail maps a service error onto a status code and a {"detail"} body.
// subject names the entity in not-found messages.
func fail(c echo.Context, err error, subject string) error {
	log := logger.FromContext(c)

	detail := ""
	var detailed *store.DetailedError
	if errors.As(err, &detailed) {
		detail = detailed.Detail
	}

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		if detail == "" {
			detail = "Invalid credentials"
		}
		log.Warn("Unauthenticated", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": detail})
	case errors.Is(err, service.ErrNotFound):
		log.Info(subject+" not found", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"detail": subject + " not found"})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInvalidArgument):
		if detail == "" {
			detail = "Invalid request"
		}
		log.Info("Rejected request", zap.Error(err))
		return badRequest(c, detail)
	default:
		log.Error("Request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal server error"})
	}
}

func success(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
