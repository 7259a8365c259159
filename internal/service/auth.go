package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"nexus-service/internal/model"
	"nexus-service/internal/store"
	"nexus-service/pkg/jwtutil"
	"nexus-service/prometheus"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the authenticated caller resolved from a bearer token
type Identity struct {
	UserID string
	Email  string
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// AuthService registers users, checks credentials and validates bearer tokens
type AuthService struct {
	users      *store.UserStore
	tokens     *jwtutil.JWTUtil
	bcryptCost int
	log        *zap.Logger
}

// NewAuthService creates an AuthService. A zero bcryptCost uses bcrypt.DefaultCost.
func NewAuthService(users *store.UserStore, tokens *jwtutil.JWTUtil, bcryptCost int, log *zap.Logger) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Register creates a user and returns a session token for it
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("register: %w", store.Detailed(ErrInvalidArgument, "Email and password are required"))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("register: %w", store.Detailed(ErrInvalidArgument, "Invalid email address"))
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		prometheus.RecordAuthError("duplicate_email")
		return nil, fmt.Errorf("register: %w", store.Detailed(ErrConflict, "Email already registered"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, ErrConflict) {
			// lost a race with a concurrent registration
			prometheus.RecordAuthError("duplicate_email")
			return nil, fmt.Errorf("register: %w", store.Detailed(ErrConflict, "Email already registered"))
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	prometheus.RegisterCounter.Inc()
	s.log.Info("User registered", zap.String("user_id", user.ID))
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login checks the credentials and returns a fresh session token
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			prometheus.RecordAuthError("login_failure")
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		prometheus.RecordAuthError("login_failure")
		return nil, ErrBadCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	prometheus.LoginCounter.Inc()
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Me returns the public profile of the caller
func (s *AuthService) Me(ctx context.Context, userID string) (*model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	public := user.Public()
	return &public, nil
}

// ValidateHeader resolves an Authorization header value to the caller identity.
// It does not touch the database.
func (s *AuthService) ValidateHeader(header string) (Identity, error) {
	if header == "" {
		return Identity{}, ErrMissingToken
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return Identity{}, ErrMalformedToken
	}

	claims, err := s.tokens.ValidateToken(parts[1])
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
