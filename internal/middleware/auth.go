package middleware

import (
	"errors"
	"net/http"

	"nexus-service/internal/service"
	"nexus-service/pkg/logger"
	"nexus-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityKey = "identity"

// TokenValidator resolves an Authorization header to a caller identity
type TokenValidator interface {
	ValidateHeader(header string) (service.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller identity on the context
func AuthMiddleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			identity, err := validator.ValidateHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				var detail, errorType string
				switch {
				case errors.Is(err, service.ErrMissingToken):
					detail, errorType = "Not authenticated", "missing_token"
				case errors.Is(err, service.ErrMalformedToken):
					detail, errorType = "Not authenticated", "invalid_format"
				case errors.Is(err, service.ErrExpiredToken):
					detail, errorType = "Token expired", "expired_token"
				default:
					detail, errorType = "Invalid token", "invalid_token"
				}
				prometheus.RecordAuthError(errorType)
				log.Warn("Request rejected by auth middleware", zap.String("reason", errorType), zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": detail})
			}

			c.Set(identityKey, identity)
			c.Set("logger", log.With(zap.String("user_id", identity.UserID)))
			return next(c)
		}
	}
}

// GetIdentity returns the caller identity stored by AuthMiddleware
func GetIdentity(c echo.Context) (service.Identity, bool) {
	identity, ok := c.Get(identityKey).(service.Identity)
	return identity, ok
}
