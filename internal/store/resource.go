package store

import (
	"context"
	"fmt"
	"time"

	"nexus-service/internal/model"
	"nexus-service/prometheus"

	"gorm.io/gorm"
)

const resourceListLimit = 500

// ResourceStore handles the saved-link library
type ResourceStore struct {
	db *gorm.DB
}

func NewResourceStore(db *gorm.DB) *ResourceStore {
	return &ResourceStore{db: db}
}

func tagsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Create stores the resource and its de-duplicated tags
func (s *ResourceStore) Create(ctx context.Context, ownerID string, resource *model.Resource) error {
	defer prometheus.TrackDBOperation("resource_create")(time.Now())

	resource.ID = ""
	resource.OwnerID = ownerID
	if err := s.db.WithContext(ctx).Create(resource).Error; err != nil {
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

// List returns the owner's resources, newest first. An empty resourceType or
// "all" disables the type filter; a non-empty tag must match one tag exactly.
func (s *ResourceStore) List(ctx context.Context, ownerID, resourceType, tag string) ([]model.Resource, error) {
	defer prometheus.TrackDBOperation("resource_list")(time.Now())

	db := s.db.WithContext(ctx)
	query := db.Preload("TagRows", tagsInOrder).Where("owner_id = ?", ownerID)
	if !isAll(resourceType) {
		query = query.Where("resource_type = ?", resourceType)
	}
	if tag != "" {
		query = query.Where("id IN (?)", db.Model(&model.ResourceTag{}).Select("resource_id").Where("tag = ?", tag))
	}

	resources := make([]model.Resource, 0)
	if err := query.Order("created_at DESC").Limit(resourceListLimit).Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

// Delete removes the owner's resource and its tags
func (s *ResourceStore) Delete(ctx context.Context, id, ownerID string) error {
	defer prometheus.TrackDBOperation("resource_delete")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(ownedBy(id, ownerID)).Delete(&model.Resource{})
		if result.Error != nil {
			return fmt.Errorf("delete resource: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete resource: %w", ErrNotFound)
		}
		if err := tx.Where("resource_id = ?", id).Delete(&model.ResourceTag{}).Error; err != nil {
			return fmt.Errorf("delete resource tags: %w", err)
		}
		return nil
	})
}

// Count returns the number of resources the owner has saved
func (s *ResourceStore) Count(ctx context.Context, ownerID string) (int64, error) {
	defer prometheus.TrackDBOperation("resource_count")(time.Now())

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Resource{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count resources: %w", err)
	}
	return count, nil
}
