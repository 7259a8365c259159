package model

import (
	"time"

	"github.com/google/uuid"
)

// newID returns a random UUID string used as a primary key
func newID() string {
	return uuid.New().String()
}

// now returns the current time in UTC; all timestamps are stored in UTC
func now() time.Time {
	return time.Now().UTC()
}
