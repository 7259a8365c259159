package jwtutil

import (
	"testing"
	"time"

	"nexus-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUtil(t *testing.T, key string, opts ...Option) *JWTUtil {
	t.Helper()
	j, err := NewJWTUtil(&config.JWTConfig{SigningKey: key, ExpirationHours: 7 * 24}, opts...)
	require.NoError(t, err)
	return j
}

func TestJWTUtil_RoundTrip(t *testing.T) {
	j := newUtil(t, "secret")

	token, err := j.GenerateToken("user-1", "ada@example.com")
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestJWTUtil_ExpiresAfterSevenDays(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	j := newUtil(t, "secret", WithClock(func() time.Time { return issued }))

	token, err := j.GenerateToken("user-1", "ada@example.com")
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour), claims.ExpiresAt.Time.UTC())

	almost := newUtil(t, "secret", WithClock(func() time.Time { return issued.Add(7*24*time.Hour - time.Minute) }))
	_, err = almost.ValidateToken(token)
	assert.NoError(t, err)

	late := newUtil(t, "secret", WithClock(func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }))
	_, err = late.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTUtil_RejectsWrongKey(t *testing.T) {
	token, err := newUtil(t, "other-key").GenerateToken("user-1", "ada@example.com")
	require.NoError(t, err)

	_, err = newUtil(t, "secret").ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTUtil_RejectsNoneAlgorithm(t *testing.T) {
	claims := UserClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newUtil(t, "secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTUtil_RejectsGarbage(t *testing.T) {
	_, err := newUtil(t, "secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestNewJWTUtil_RequiresKey(t *testing.T) {
	_, err := NewJWTUtil(&config.JWTConfig{ExpirationHours: 1})
	assert.Error(t, err)
}
