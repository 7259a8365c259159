package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"nexus-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	signingKey []byte
	expiration time.Duration
	now        func() time.Time
}

// Option configures a JWTUtil
type Option func(*JWTUtil)

// WithClock overrides the time source used for issuing and validating tokens
func WithClock(now func() time.Time) Option {
	return func(j *JWTUtil) {
		j.now = now
	}
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(cfg *config.JWTConfig, opts ...Option) (*JWTUtil, error) {
	if cfg == nil || cfg.SigningKey == "" {
		return nil, errors.New("JWT signing key not provided")
	}
	if cfg.ExpirationHours <= 0 {
		return nil, fmt.Errorf("invalid JWT expiration: %d hours", cfg.ExpirationHours)
	}

	j := &JWTUtil{
		signingKey: []byte(cfg.SigningKey),
		expiration: time.Duration(cfg.ExpirationHours) * time.Hour,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// GenerateToken creates a signed token for the user that expires after the configured lifetime
func (j *JWTUtil) GenerateToken(userID, email string) (string, error) {
	issuedAt := j.now()
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.signingKey)
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return j.signingKey, nil
		},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user_id")
	}
	return claims, nil
}
