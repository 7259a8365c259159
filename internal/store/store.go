// Package store holds the ownership-scoped persistence for every entity.
// Each store wraps the shared *gorm.DB and filters every read and write by
// owner, so one user can never observe or mutate another user's records.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("already exists")
)

// DetailedError attaches a client-facing message to one of the sentinels
type DetailedError struct {
	Detail string
	Err    error
}

func (e *DetailedError) Error() string {
	return e.Detail + ": " + e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// Detailed wraps sentinel with a message safe to show to the caller
func Detailed(sentinel error, detail string) error {
	return &DetailedError{Detail: detail, Err: sentinel}
}

// Stores bundles every store over a single database handle
type Stores struct {
	Users     *UserStore
	Tasks     *TaskStore
	Plans     *StudyPlanStore
	Resources *ResourceStore
	Wellness  *WellnessStore
	Pomodoros *PomodoroStore
	Nudges    *NudgeStore
}

// New builds all stores over db
func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:     NewUserStore(db),
		Tasks:     NewTaskStore(db),
		Plans:     NewStudyPlanStore(db),
		Resources: NewResourceStore(db),
		Wellness:  NewWellnessStore(db),
		Pomodoros: NewPomodoroStore(db),
		Nudges:    NewNudgeStore(db),
	}
}

// ownedBy scopes a query to one record of one owner
func ownedBy(id, ownerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND owner_id = ?", id, ownerID)
	}
}

// wrapFind maps gorm.ErrRecordNotFound onto ErrNotFound
func wrapFind(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isAll reports whether a list filter means "no filter"
func isAll(filter string) bool {
	return filter == "" || filter == "all"
}
