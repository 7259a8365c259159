package store

import (
	"context"
	"testing"

	"nexus-service/internal/model"
	"nexus-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(testutil.NewDB(t))

	user := model.User{Email: "ada@example.com", PasswordHash: "hash", Name: "Ada"}
	require.NoError(t, s.Create(ctx, &user))
	assert.NotEmpty(t, user.ID)

	dup := model.User{Email: "ada@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, s.Create(ctx, &dup), ErrConflict)

	exists, err := s.EmailExists(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := s.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = s.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
