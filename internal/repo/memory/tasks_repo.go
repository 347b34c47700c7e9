package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/google/uuid"
)

type TasksRepo struct {
	mu    sync.RWMutex
	items map[string]task.Task
	now   func() time.Time
}

func NewTasksRepo() *TasksRepo {
	return &TasksRepo{
		items: make(map[string]task.Task),
		now:   time.Now,
	}
}

func (r *TasksRepo) Create(_ context.Context, t task.Task) (task.Task, error) {
	now := r.now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now

	r.mu.Lock()
	r.items[t.ID] = t
	r.mu.Unlock()

	return t, nil
}

func (r *TasksRepo) List(_ context.Context, ownerID string, filter task.ListFilter) ([]task.Task, error) {
	r.mu.RLock()
	out := make([]task.Task, 0)
	for _, t := range r.items {
		if t.UserID == ownerID && filter.Matches(t) {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *TasksRepo) Get(_ context.Context, id, ownerID string) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok || t.UserID != ownerID {
		return task.Task{}, task.ErrNotFound
	}
	return t, nil
}

func (r *TasksRepo) Update(_ context.Context, id, ownerID string, patch task.Patch) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.UserID != ownerID {
		return task.Task{}, task.ErrNotFound
	}

	patch.Apply(&t)
	t.UpdatedAt = r.now().UTC()
	r.items[id] = t

	return t, nil
}

func (r *TasksRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.UserID != ownerID {
		return task.ErrNotFound
	}

	delete(r.items, id)
	return nil
}
