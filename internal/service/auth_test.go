package service

import (
	"context"
	"testing"
	"time"

	"nexus-service/internal/store"
	"nexus-service/internal/testutil"
	"nexus-service/pkg/config"
	"nexus-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTokens(t *testing.T, opts ...jwtutil.Option) *jwtutil.JWTUtil {
	t.Helper()
	tokens, err := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 7 * 24}, opts...)
	require.NoError(t, err)
	return tokens
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	users := store.NewUserStore(testutil.NewDB(t))
	return NewAuthService(users, newTokens(t), bcrypt.MinCost, zap.NewNop())
}

func TestAuthService_RegisterLoginMe(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)

	registered, err := s.Register(ctx, "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "ada@example.com", registered.User.Email)
	assert.Equal(t, "Ada", registered.User.Name)

	identity, err := s.ValidateHeader("Bearer " + registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.UserID)
	assert.Equal(t, "ada@example.com", identity.Email)

	loggedIn, err := s.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	me, err := s.Me(ctx, identity.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)

	_, err := s.Register(ctx, "", "pw", "Ada")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Register(ctx, "ada@example.com", "", "Ada")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Register(ctx, "not-an-email", "pw", "Ada")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Register(ctx, "ada@example.com", "pw", "Ada")
	require.NoError(t, err)
	_, err = s.Register(ctx, "ada@example.com", "other", "Imposter")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)
	_, err := s.Register(ctx, "ada@example.com", "pw", "Ada")
	require.NoError(t, err)

	_, err = s.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = s.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_MeForVanishedUser(t *testing.T) {
	s := newAuthService(t)

	_, err := s.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_ValidateHeader(t *testing.T) {
	s := newAuthService(t)
	valid, err := s.tokens.GenerateToken("user-1", "ada@example.com")
	require.NoError(t, err)

	wrongKey, err := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "other", ExpirationHours: 1})
	require.NoError(t, err)
	forged, err := wrongKey.GenerateToken("user-1", "ada@example.com")
	require.NoError(t, err)

	issuedLongAgo := newTokens(t, jwtutil.WithClock(func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }))
	expired, err := issuedLongAgo.GenerateToken("user-1", "ada@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing", "", ErrMissingToken},
		{"no scheme", valid, ErrMalformedToken},
		{"basic scheme", "Basic " + valid, ErrMalformedToken},
		{"extra parts", "Bearer " + valid + " trailing", ErrMalformedToken},
		{"wrong key", "Bearer " + forged, ErrInvalidToken},
		{"expired", "Bearer " + expired, ErrExpiredToken},
		{"garbage", "Bearer abc.def.ghi", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateHeader(tt.header)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}

	identity, err := s.ValidateHeader("bearer " + valid)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
}
