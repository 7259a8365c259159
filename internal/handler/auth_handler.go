package handler

import (
	"net/http"

	"nexus-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser creates an account and returns a session token
func (h *Handler) RegisterUser(c echo.Context) error {
	log := logger.FromContext(c)

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid register payload", zap.Error(err))
		return badRequest(c, "Invalid request data")
	}

	result, err := h.auth.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return fail(c, err, "User")
	}

	log.Info("User registered", zap.String("user_id", result.User.ID))
	return c.JSON(http.StatusOK, result)
}

// Login exchanges credentials for a session token
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid login payload", zap.Error(err))
		return badRequest(c, "Invalid request data")
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err, "User")
	}
	return c.JSON(http.StatusOK, result)
}

// Me returns the caller's profile
func (h *Handler) Me(c echo.Context) error {
	user, err := h.auth.Me(c.Request().Context(), ownerID(c))
	if err != nil {
		return fail(c, err, "User")
	}
	return c.JSON(http.StatusOK, user)
}
