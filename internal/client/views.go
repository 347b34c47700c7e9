package client

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/geocoder89/taskhub/internal/domain/user"
)

// TaskAPI is the part of Client the dashboard drives.
type TaskAPI interface {
	ListTasks(ctx context.Context, search, status string) ([]task.Task, error)
	CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.Task, error)
	UpdateTask(ctx context.Context, id string, req task.UpdateTaskRequest) (task.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type ProfileAPI interface {
	GetProfile(ctx context.Context) (user.Profile, error)
	UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.Profile, error)
}

// Dashboard is the task list screen. A failed call sets Error and leaves
// Tasks as it was.
type Dashboard struct {
	Tasks   []task.Task
	Search  string
	Status  string
	Loading bool
	Error   string

	api TaskAPI
}

func NewDashboard(api TaskAPI) *Dashboard {
	return &Dashboard{api: api, Tasks: []task.Task{}}
}

// Refresh reloads the list with the current search and status filter.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.Loading = true
	defer func() { d.Loading = false }()

	tasks, err := d.api.ListTasks(ctx, d.Search, d.Status)
	if err != nil {
		d.Error = messageOf(err)
		return err
	}

	d.Tasks = tasks
	d.Error = ""
	return nil
}

func (d *Dashboard) SetSearch(ctx context.Context, search string) error {
	d.Search = strings.TrimSpace(search)
	return d.Refresh(ctx)
}

// SetStatus filters by status; "" or "all" clears the filter.
func (d *Dashboard) SetStatus(ctx context.Context, status string) error {
	status = strings.TrimSpace(status)
	if strings.EqualFold(status, "all") {
		status = ""
	}
	d.Status = status
	return d.Refresh(ctx)
}

// Add creates a task and puts it at the top of the list when it matches the
// active filter.
func (d *Dashboard) Add(ctx context.Context, req task.CreateTaskRequest) (task.Task, error) {
	created, err := d.api.CreateTask(ctx, req)
	if err != nil {
		d.Error = messageOf(err)
		return task.Task{}, err
	}

	if d.matches(created) {
		d.Tasks = append([]task.Task{created}, d.Tasks...)
	}
	d.Error = ""
	return created, nil
}

// Edit updates a task and replaces it in place, or drops it from the list if
// it no longer matches the active filter.
func (d *Dashboard) Edit(ctx context.Context, id string, req task.UpdateTaskRequest) (task.Task, error) {
	updated, err := d.api.UpdateTask(ctx, id, req)
	if err != nil {
		d.Error = messageOf(err)
		return task.Task{}, err
	}

	for i := range d.Tasks {
		if d.Tasks[i].ID != id {
			continue
		}
		if d.matches(updated) {
			d.Tasks[i] = updated
		} else {
			d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
		}
		break
	}
	d.Error = ""
	return updated, nil
}

func (d *Dashboard) Remove(ctx context.Context, id string) error {
	if err := d.api.DeleteTask(ctx, id); err != nil {
		d.Error = messageOf(err)
		return err
	}

	d.removeLocal(id)
	d.Error = ""
	return nil
}

func (d *Dashboard) removeLocal(id string) {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
			return
		}
	}
}

// Find resolves a full id or a unique id prefix against the loaded list.
func (d *Dashboard) Find(ref string) (task.Task, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, false
	}

	var (
		found task.Task
		hits  int
	)
	for _, t := range d.Tasks {
		if t.ID == ref {
			return t, true
		}
		if strings.HasPrefix(t.ID, ref) {
			found = t
			hits++
		}
	}
	return found, hits == 1
}

func (d *Dashboard) matches(t task.Task) bool {
	var f task.ListFilter
	if d.Search != "" {
		s := d.Search
		f.Search = &s
	}
	if d.Status != "" {
		st, err := task.ParseStatus(d.Status)
		if err != nil {
			return false
		}
		f.Status = &st
	}
	return f.Matches(t)
}

// ProfileView is the profile screen. EditMode is on between BeginEdit and a
// successful Save or Cancel.
type ProfileView struct {
	Profile  user.Profile
	EditMode bool
	Saving   bool
	Loading  bool
	Error    string
	Notice   string

	api ProfileAPI
}

func NewProfileView(api ProfileAPI) *ProfileView {
	return &ProfileView{api: api}
}

func (v *ProfileView) Load(ctx context.Context) error {
	v.Loading = true
	defer func() { v.Loading = false }()

	p, err := v.api.GetProfile(ctx)
	if err != nil {
		v.Error = messageOf(err)
		return err
	}

	v.Profile = p
	v.Error = ""
	return nil
}

func (v *ProfileView) BeginEdit() {
	v.EditMode = true
	v.Notice = ""
	v.Error = ""
}

func (v *ProfileView) Cancel() {
	v.EditMode = false
	v.Error = ""
}

// Save sends only the fields that changed. On failure the view stays in
// edit mode with the last saved profile intact.
func (v *ProfileView) Save(ctx context.Context, name, email string) error {
	var req user.UpdateProfileRequest

	if name = strings.TrimSpace(name); name != "" && name != v.Profile.Name {
		req.Name = &name
	}
	if email = strings.TrimSpace(email); email != "" && email != v.Profile.Email {
		req.Email = &email
	}

	if req.Name == nil && req.Email == nil {
		v.EditMode = false
		v.Notice = "Nothing to update"
		return nil
	}

	v.Saving = true
	defer func() { v.Saving = false }()

	p, err := v.api.UpdateProfile(ctx, req)
	if err != nil {
		v.Error = messageOf(err)
		return err
	}

	v.Profile = p
	v.EditMode = false
	v.Error = ""
	v.Notice = "Profile updated"
	return nil
}

func messageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrNotLoggedIn) {
		return "Please log in first"
	}
	return genericErrorMessage
}
