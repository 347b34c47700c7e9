package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/taskhub/internal/apperr"
	"github.com/geocoder89/taskhub/internal/auth"
	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/geocoder89/taskhub/internal/domain/user"
	"github.com/geocoder89/taskhub/internal/repo/memory"
	"github.com/geocoder89/taskhub/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func requireKind(t *testing.T, err error, want apperr.Kind) *apperr.Error {
	t.Helper()
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %T: %v", err, err)
	require.Equal(t, want, e.Kind, "err = %v", err)
	return e
}

type recordingFailures struct {
	reasons []string
}

func (r *recordingFailures) AuthFailed(reason string) { r.reasons = append(r.reasons, reason) }

func newAuth(t *testing.T) (*service.AuthService, *memory.UsersRepo, *recordingFailures) {
	t.Helper()
	users := memory.NewUsersRepo()
	failures := &recordingFailures{}
	return service.NewAuthService(users, auth.NewManager("test-secret", "taskhub", time.Hour), failures), users, failures
}

func TestAuth_RegisterValidation(t *testing.T) {
	svc, _, _ := newAuth(t)
	ctx := context.Background()

	tests := []struct {
		name                  string
		uname, email, password string
		wantCode              string
	}{
		{name: "missing name", uname: " ", email: "a@x.com", password: "secret1", wantCode: "missing_fields"},
		{name: "missing email", uname: "Ann", email: "", password: "secret1", wantCode: "missing_fields"},
		{name: "missing password", uname: "Ann", email: "a@x.com", password: "", wantCode: "missing_fields"},
		{name: "bad email", uname: "Ann", email: "not-an-email", password: "secret1", wantCode: "invalid_email"},
		{name: "short password", uname: "Ann", email: "a@x.com", password: "abc", wantCode: "password_too_short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.uname, tt.email, tt.password)
			e := requireKind(t, err, apperr.KindValidation)
			assert.Equal(t, tt.wantCode, e.Code)
		})
	}
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	svc, users, failures := newAuth(t)
	ctx := context.Background()

	p, err := svc.Register(ctx, "Ann", " Ann@X.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", p.Email)
	assert.NotEmpty(t, p.ID)

	stored, err := users.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	_, err = svc.Register(ctx, "Ann again", "ann@x.com", "secret2")
	requireKind(t, err, apperr.KindConflict)

	token, err := svc.Login(ctx, "ANN@x.com", "secret1")
	require.NoError(t, err)

	uid, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, p.ID, uid)

	_, wrongPwErr := svc.Login(ctx, "ann@x.com", "wrong-password")
	_, unknownErr := svc.Login(ctx, "nobody@x.com", "secret1")

	a := requireKind(t, wrongPwErr, apperr.KindAuth)
	b := requireKind(t, unknownErr, apperr.KindAuth)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, []string{"invalid_credentials", "invalid_credentials"}, failures.reasons)
}

func TestAuth_VerifyTokenIsUniform(t *testing.T) {
	svc, _, _ := newAuth(t)
	other := auth.NewManager("other-secret", "taskhub", time.Hour)
	foreign, _ := other.GenerateAccessToken("u1", "a@x.com")

	var msgs []string
	for _, tok := range []string{"", "   ", "garbage", foreign} {
		_, err := svc.VerifyToken(tok)
		e := requireKind(t, err, apperr.KindAuth)
		msgs = append(msgs, e.Message)
	}

	for _, m := range msgs {
		assert.Equal(t, msgs[0], m)
	}
}

type failingUsers struct{ user.Store }

func (failingUsers) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, errors.New("connection refused")
}

func TestAuth_LoginStoreFailureIsInternal(t *testing.T) {
	svc := service.NewAuthService(failingUsers{}, auth.NewManager("s", "taskhub", time.Hour), nil)

	_, err := svc.Login(context.Background(), "ann@x.com", "secret1")
	e := requireKind(t, err, apperr.KindInternal)
	assert.Equal(t, "Server error", e.Message)
}

func TestTasks_CreateValidation(t *testing.T) {
	svc := service.NewTaskService(memory.NewTasksRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", task.CreateTaskRequest{Title: ""})
	requireKind(t, err, apperr.KindValidation)

	_, err = svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "   "})
	requireKind(t, err, apperr.KindValidation)

	_, err = svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "x", Status: "archived"})
	requireKind(t, err, apperr.KindValidation)

	created, err := svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.UserID)
	assert.Equal(t, task.StatusPending, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	withStatus, err := svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "Ship", Status: "in-progress"})
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, withStatus.Status)
}

func TestTasks_ForeignAccessLooksMissing(t *testing.T) {
	svc := service.NewTaskService(memory.NewTasksRepo())
	ctx := context.Background()

	a, err := svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "secret plan"})
	require.NoError(t, err)

	_, getErr := svc.Get(ctx, a.ID, "bob")
	_, updErr := svc.Update(ctx, a.ID, "bob", task.UpdateTaskRequest{Title: ptr("mine")})
	delErr := svc.Delete(ctx, a.ID, "bob")
	_, missingErr := svc.Get(ctx, "does-not-exist", "bob")

	for _, err := range []error{getErr, updErr, delErr, missingErr} {
		e := requireKind(t, err, apperr.KindNotFound)
		assert.Equal(t, "Task not found", e.Message)
	}

	list, err := svc.List(ctx, "bob", "", "")
	require.NoError(t, err)
	assert.Empty(t, list)

	still, err := svc.Get(ctx, a.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "secret plan", still.Title)
}

func TestTasks_ListFilters(t *testing.T) {
	svc := service.NewTaskService(memory.NewTasksRepo())
	ctx := context.Background()

	_, _ = svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "Buy FOOD"})
	_, _ = svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "foobar", Status: "done"})
	_, _ = svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "Walk dog", Status: "done"})
	_, _ = svc.Create(ctx, "bob", task.CreateTaskRequest{Title: "foo too", Status: "done"})

	all, err := svc.List(ctx, "alice", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}

	done, err := svc.List(ctx, "alice", "", "done")
	require.NoError(t, err)
	assert.Len(t, done, 2)
	for _, d := range done {
		assert.Equal(t, task.StatusDone, d.Status)
	}

	foo, err := svc.List(ctx, "alice", "FOO", "")
	require.NoError(t, err)
	assert.Len(t, foo, 2)

	unknown, err := svc.List(ctx, "alice", "", "archived")
	require.NoError(t, err)
	assert.Empty(t, unknown)

	upper, err := svc.List(ctx, "alice", "", "DONE")
	require.NoError(t, err)
	assert.Empty(t, upper, "status filter is case-sensitive")
}

func TestTasks_PartialUpdate(t *testing.T) {
	svc := service.NewTaskService(memory.NewTasksRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "Write report", Description: "Q3"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "alice", task.UpdateTaskRequest{Status: ptr("done")})
	require.NoError(t, err)
	assert.Equal(t, "Write report", updated.Title)
	assert.Equal(t, "Q3", updated.Description)
	assert.Equal(t, task.StatusDone, updated.Status)

	// any status may move to any other
	back, err := svc.Update(ctx, created.ID, "alice", task.UpdateTaskRequest{Status: ptr("pending")})
	require.NoError(t, err)
	assert.Equal(t, task.StatusPending, back.Status)

	_, err = svc.Update(ctx, created.ID, "alice", task.UpdateTaskRequest{Title: ptr("")})
	requireKind(t, err, apperr.KindValidation)

	_, err = svc.Update(ctx, created.ID, "alice", task.UpdateTaskRequest{Status: ptr("bogus")})
	requireKind(t, err, apperr.KindValidation)

	noop, err := svc.Update(ctx, created.ID, "alice", task.UpdateTaskRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Write report", noop.Title)

	_, err = svc.Update(ctx, "missing", "alice", task.UpdateTaskRequest{})
	requireKind(t, err, apperr.KindNotFound)
}

func TestTasks_DeleteTwice(t *testing.T) {
	svc := service.NewTaskService(memory.NewTasksRepo())
	ctx := context.Background()

	created, _ := svc.Create(ctx, "alice", task.CreateTaskRequest{Title: "temp"})

	require.NoError(t, svc.Delete(ctx, created.ID, "alice"))
	requireKind(t, svc.Delete(ctx, created.ID, "alice"), apperr.KindNotFound)
}

func TestProfile_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsersRepo()
	svc := service.NewProfileService(users)

	ann, _ := users.Create(ctx, "Ann", "ann@x.com", "h")
	_, _ = users.Create(ctx, "Bob", "bob@x.com", "h")

	p, err := svc.GetProfile(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, "ann@x.com", p.Email)

	renamed, err := svc.UpdateProfile(ctx, ann.ID, ptr("Annie"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Annie", renamed.Name)
	assert.Equal(t, "ann@x.com", renamed.Email)

	moved, err := svc.UpdateProfile(ctx, ann.ID, nil, ptr(" ANNIE@x.com "))
	require.NoError(t, err)
	assert.Equal(t, "annie@x.com", moved.Email)
	assert.Equal(t, "Annie", moved.Name)

	_, err = svc.UpdateProfile(ctx, ann.ID, nil, ptr("bob@x.com"))
	requireKind(t, err, apperr.KindConflict)

	_, err = svc.UpdateProfile(ctx, ann.ID, nil, ptr("nope"))
	requireKind(t, err, apperr.KindValidation)

	_, err = svc.UpdateProfile(ctx, ann.ID, ptr("  "), nil)
	requireKind(t, err, apperr.KindValidation)

	_, err = svc.GetProfile(ctx, "ghost")
	requireKind(t, err, apperr.KindNotFound)
}
