package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/gin-gonic/gin"
)

type TaskManager interface {
	List(ctx context.Context, ownerID, search, status string) ([]task.Task, error)
	Create(ctx context.Context, ownerID string, req task.CreateTaskRequest) (task.Task, error)
	Get(ctx context.Context, id, ownerID string) (task.Task, error)
	Update(ctx context.Context, id, ownerID string, req task.UpdateTaskRequest) (task.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// TasksHandler methods take the verified caller id as an argument; they are
// mounted behind the auth guard.
type TasksHandler struct {
	tasks TaskManager
}

func NewTasksHandler(tasks TaskManager) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

func (h *TasksHandler) ListTasks(ctx *gin.Context, userID string) {
	cctx, cancel := withTimeout(ctx, 3*time.Second)
	defer cancel()

	items, err := h.tasks.List(cctx, userID, ctx.Query("search"), ctx.Query("status"))
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	if items == nil {
		items = []task.Task{}
	}

	ctx.JSON(http.StatusOK, items)
}

func (h *TasksHandler) CreateTask(ctx *gin.Context, userID string) {
	var req task.CreateTaskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := withTimeout(ctx, 3*time.Second)
	defer cancel()

	created, err := h.tasks.Create(cctx, userID, req)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *TasksHandler) GetTask(ctx *gin.Context, userID string) {
	cctx, cancel := withTimeout(ctx, 2*time.Second)
	defer cancel()

	t, err := h.tasks.Get(cctx, ctx.Param("id"), userID)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, t)
}

func (h *TasksHandler) UpdateTask(ctx *gin.Context, userID string) {
	var req task.UpdateTaskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := withTimeout(ctx, 3*time.Second)
	defer cancel()

	updated, err := h.tasks.Update(cctx, ctx.Param("id"), userID, req)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *TasksHandler) DeleteTask(ctx *gin.Context, userID string) {
	cctx, cancel := withTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := h.tasks.Delete(cctx, ctx.Param("id"), userID); err != nil {
		RespondAppError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
