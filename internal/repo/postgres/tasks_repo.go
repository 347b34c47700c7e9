package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/geocoder89/taskhub/internal/observability"
	"github.com/geocoder89/taskhub/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, user_id, title, description, status, created_at, updated_at`

type TasksRepo struct {
	pool *pgxpool.Pool
	obs  observability.DBObserver
}

func NewTasksRepo(pool *pgxpool.Pool, obs observability.DBObserver) *TasksRepo {
	if obs == nil {
		obs = observability.NopDB()
	}
	return &TasksRepo{pool: pool, obs: obs}
}

func (r *TasksRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	var out task.Task

	err := r.obs.ObserveDB("tasks.create", func() error {
		row := r.pool.QueryRow(ctx,
			`INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			 RETURNING `+taskColumns,
			uuid.NewString(), t.UserID, t.Title, t.Description, string(t.Status),
		)
		var err error
		out, err = scanTask(row)
		return err
	})

	if err != nil {
		return task.Task{}, err
	}
	return out, nil
}

func (r *TasksRepo) List(ctx context.Context, ownerID string, filter task.ListFilter) ([]task.Task, error) {
	if !utils.IsUUID(ownerID) {
		return []task.Task{}, nil
	}

	conds := []string{"user_id = $1"}
	args := []interface{}{ownerID}
	argsPosition := 2

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, string(*filter.Status))
		argsPosition++
	}

	if filter.Search != nil && *filter.Search != "" {
		conds = append(conds, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, argsPosition))
		args = append(args, "%"+utils.EscapeLike(*filter.Search)+"%")
		argsPosition++
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC, id DESC`

	output := make([]task.Task, 0)

	err := r.obs.ObserveDB("tasks.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				return err
			}
			output = append(output, t)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return output, nil
}

func (r *TasksRepo) Get(ctx context.Context, id, ownerID string) (task.Task, error) {
	if !utils.IsUUID(id) || !utils.IsUUID(ownerID) {
		return task.Task{}, task.ErrNotFound
	}

	var out task.Task
	err := r.obs.ObserveDB("tasks.get", func() error {
		row := r.pool.QueryRow(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
		var err error
		out, err = scanTask(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	return out, nil
}

// Update applies only the non-nil fields of patch in a single statement.
func (r *TasksRepo) Update(ctx context.Context, id, ownerID string, patch task.Patch) (task.Task, error) {
	if !utils.IsUUID(id) || !utils.IsUUID(ownerID) {
		return task.Task{}, task.ErrNotFound
	}

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	var out task.Task
	err := r.obs.ObserveDB("tasks.update", func() error {
		row := r.pool.QueryRow(ctx,
			`UPDATE tasks
			    SET title = COALESCE($3, title),
			        description = COALESCE($4, description),
			        status = COALESCE($5, status),
			        updated_at = NOW()
			  WHERE id = $1 AND user_id = $2
			  RETURNING `+taskColumns,
			id, ownerID, patch.Title, patch.Description, status,
		)
		var err error
		out, err = scanTask(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	return out, nil
}

func (r *TasksRepo) Delete(ctx context.Context, id, ownerID string) error {
	if !utils.IsUUID(id) || !utils.IsUUID(ownerID) {
		return task.ErrNotFound
	}

	return r.obs.ObserveDB("tasks.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
		if err != nil {
			return err
		}

		// if no rows were deleted as a result return a not found error
		if tag.RowsAffected() == 0 {
			return task.ErrNotFound
		}
		return nil
	})
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var status string

	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}

	t.Status = task.Status(status)
	return t, nil
}
