package service

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/taskhub/internal/apperr"
	"github.com/geocoder89/taskhub/internal/domain/task"
)

var (
	errTaskNotFound  = apperr.NotFound("task_not_found", "Task not found")
	errTitleRequired = apperr.Validation("title_required", "Title is required")
	errInvalidStatus = apperr.Validation("invalid_status", "Status must be one of pending, in-progress, done")
)

type TaskService struct {
	tasks task.Store
}

func NewTaskService(tasks task.Store) *TaskService {
	return &TaskService{tasks: tasks}
}

// List returns the owner's tasks, newest first. search is a case-insensitive
// title substring; status is an exact, case-sensitive match. An unknown
// status matches nothing.
func (s *TaskService) List(ctx context.Context, ownerID, search, status string) ([]task.Task, error) {
	var filter task.ListFilter

	if search = strings.TrimSpace(search); search != "" {
		filter.Search = &search
	}

	if status != "" {
		st, err := task.ParseStatus(status)
		if err != nil {
			return []task.Task{}, nil
		}
		filter.Status = &st
	}

	tasks, err := s.tasks.List(ctx, ownerID, filter)
	if err != nil {
		return nil, internal(err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, ownerID string, req task.CreateTaskRequest) (task.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return task.Task{}, errTitleRequired
	}

	status := task.StatusPending
	if strings.TrimSpace(req.Status) != "" {
		st, err := task.ParseStatus(req.Status)
		if err != nil {
			return task.Task{}, errInvalidStatus
		}
		status = st
	}

	created, err := s.tasks.Create(ctx, task.Task{
		UserID:      ownerID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
	})
	if err != nil {
		return task.Task{}, internal(err)
	}
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id, ownerID string) (task.Task, error) {
	t, err := s.tasks.Get(ctx, id, ownerID)
	if err != nil {
		return task.Task{}, s.mapErr(err)
	}
	return t, nil
}

// Update applies only the fields present in req.
func (s *TaskService) Update(ctx context.Context, id, ownerID string, req task.UpdateTaskRequest) (task.Task, error) {
	var patch task.Patch

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return task.Task{}, errTitleRequired
		}
		patch.Title = &title
	}

	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		patch.Description = &desc
	}

	if req.Status != nil {
		st, err := task.ParseStatus(*req.Status)
		if err != nil {
			return task.Task{}, errInvalidStatus
		}
		patch.Status = &st
	}

	if patch.Empty() {
		return s.Get(ctx, id, ownerID)
	}

	t, err := s.tasks.Update(ctx, id, ownerID, patch)
	if err != nil {
		return task.Task{}, s.mapErr(err)
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.tasks.Delete(ctx, id, ownerID); err != nil {
		return s.mapErr(err)
	}
	return nil
}

func (s *TaskService) mapErr(err error) error {
	if errors.Is(err, task.ErrNotFound) {
		return errTaskNotFound
	}
	return internal(err)
}
