package handler

import (
	"net/http"
	"time"

	"nexus-service/pkg/database"
	"nexus-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck handles the health check endpoint. ?check=db also pings the database.
func (h *Handler) HealthCheck(c echo.Context) error {
	log := logger.FromContext(c)

	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	if c.QueryParam("check") == "db" {
		if err := database.Ping(h.db); err != nil {
			log.Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			response["db_error"] = "Failed to ping database"
			return c.JSON(http.StatusInternalServerError, response)
		}
		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}

// Hello returns a simple welcome message
func (h *Handler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Nexus API",
		"status":  "running",
	})
}
