package task

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)

type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ParseStatus accepts exactly one of the three known values. "DONE" is
// not "done".
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", ErrInvalidStatus
	}
}

// with pointers if optional, it will be nil
type ListFilter struct {
	Search *string
	Status *Status
}

// Matches reports whether t passes the filter. Stores that cannot push the
// filter down to the database use this directly.
func (f ListFilter) Matches(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}

	if f.Search != nil && *f.Search != "" {
		if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(*f.Search)) {
			return false
		}
	}

	return true
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Status      string `json:"status" binding:"omitempty"`
}

// partial update: a nil field keeps its stored value.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status" binding:"omitempty"`
}

// Patch is the validated form of UpdateTaskRequest handed to stores.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply copies the set fields of p onto t.
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// Store persists tasks. Every method is scoped by ownerID; a task owned by
// someone else is reported as ErrNotFound.
type Store interface {
	Create(ctx context.Context, t Task) (Task, error)
	List(ctx context.Context, ownerID string, filter ListFilter) ([]Task, error)
	Get(ctx context.Context, id, ownerID string) (Task, error)
	Update(ctx context.Context, id, ownerID string, patch Patch) (Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}
