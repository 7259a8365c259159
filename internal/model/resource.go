package model

import (
	"time"

	"gorm.io/gorm"
)

const DefaultResourceType = "article"

// Resource is a saved link in the user's library
type Resource struct {
	ID           string        `json:"id" gorm:"type:varchar(36);primaryKey"`
	OwnerID      string        `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Title        string        `json:"title" gorm:"type:varchar(255);not null"`
	URL          string        `json:"url" gorm:"type:text"`
	ResourceType string        `json:"resource_type" gorm:"type:varchar(50);index"`
	Tags         []string      `json:"tags" gorm:"-"`
	TagRows      []ResourceTag `json:"-" gorm:"foreignKey:ResourceID"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ResourceTag stores one tag of a resource; (resource_id, tag) is unique
type ResourceTag struct {
	ID         uint   `gorm:"primaryKey"`
	ResourceID string `gorm:"type:varchar(36);uniqueIndex:idx_resource_tag;not null"`
	Tag        string `gorm:"type:varchar(100);uniqueIndex:idx_resource_tag;index;not null"`
}

// BeforeCreate hook will be called before creating a new Resource record
func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	r.TagRows = make([]ResourceTag, 0, len(r.Tags))
	seen := make(map[string]bool, len(r.Tags))
	tags := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		r.TagRows = append(r.TagRows, ResourceTag{Tag: tag})
	}
	r.Tags = tags
	return nil
}

// AfterFind fills Tags from the preloaded tag rows
func (r *Resource) AfterFind(tx *gorm.DB) error {
	r.Tags = make([]string, 0, len(r.TagRows))
	for _, row := range r.TagRows {
		r.Tags = append(r.Tags, row.Tag)
	}
	return nil
}
