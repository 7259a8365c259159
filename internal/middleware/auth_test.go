package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nexus-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator map[string]error

func (f fakeValidator) ValidateHeader(header string) (service.Identity, error) {
	if err, ok := f[header]; ok {
		return service.Identity{}, err
	}
	return service.Identity{UserID: "user-1", Email: "ada@example.com"}, nil
}

func TestAuthMiddleware(t *testing.T) {
	validator := fakeValidator{
		"":              service.ErrMissingToken,
		"Token abc":     service.ErrMalformedToken,
		"Bearer old":    service.ErrExpiredToken,
		"Bearer forged": service.ErrInvalidToken,
	}

	handler := AuthMiddleware(validator)(func(c echo.Context) error {
		identity, ok := GetIdentity(c)
		require.True(t, ok)
		return c.String(http.StatusOK, identity.UserID)
	})

	tests := []struct {
		header string
		status int
		body   string
	}{
		{"", http.StatusUnauthorized, `{"detail":"Not authenticated"}`},
		{"Token abc", http.StatusUnauthorized, `{"detail":"Not authenticated"}`},
		{"Bearer old", http.StatusUnauthorized, `{"detail":"Token expired"}`},
		{"Bearer forged", http.StatusUnauthorized, `{"detail":"Invalid token"}`},
		{"Bearer good", http.StatusOK, "user-1"},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			require.NoError(t, handler(e.NewContext(req, rec)))
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}
