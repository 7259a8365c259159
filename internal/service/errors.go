package service

import (
	"errors"
	"fmt"

	"nexus-service/internal/store"
)

// Error taxonomy shared by services and handlers. Store errors wrap the same
// sentinels, so errors.Is works across both layers.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNotFound        = store.ErrNotFound
	ErrInvalidArgument = store.ErrInvalidArgument
	ErrConflict        = store.ErrConflict
)

// Unauthenticated causes, each matching ErrUnauthenticated
var (
	ErrMissingToken   = fmt.Errorf("missing authorization token: %w", ErrUnauthenticated)
	ErrMalformedToken = fmt.Errorf("invalid authorization format, expected Bearer token: %w", ErrUnauthenticated)
	ErrInvalidToken   = fmt.Errorf("invalid token: %w", ErrUnauthenticated)
	ErrExpiredToken   = fmt.Errorf("token expired: %w", ErrUnauthenticated)
	ErrBadCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
)
