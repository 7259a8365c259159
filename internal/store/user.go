package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexus-service/internal/model"
	"nexus-service/prometheus"

	"gorm.io/gorm"
)

// UserStore persists user credentials
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a user; a taken email yields ErrConflict
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("user_create")(time.Now())

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user: %w", ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// EmailExists reports whether any user has registered email
func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	defer prometheus.TrackDBOperation("user_exists")(time.Now())

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("user_find")(time.Now())

	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapFind("find user by email", err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	defer prometheus.TrackDBOperation("user_find")(time.Now())

	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, wrapFind("find user", err)
	}
	return &user, nil
}
