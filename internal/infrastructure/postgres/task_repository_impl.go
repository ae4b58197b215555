package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	"github.com/oksasatya/task-tracker/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskColumns = `id, title, description, due_date, status, project_id`

var taskOrder = map[repository.TaskSort]string{
	repository.SortByDueDate: `due_date ASC NULLS LAST, id ASC`,
	repository.SortByTitle:   `title ASC, id ASC`,
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, due_date, status, project_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, t.Title, t.Description, t.DueDate, string(t.Status), t.ProjectID)

	return classify(row.Scan(&t.ID))
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, classify(err)
	}
	return t, nil
}

type taskListQuery struct {
	countSQL  string
	countArgs []any
	pageSQL   string
	pageArgs  []any
}

// buildTaskList renders the count and page statements for q. Both share the
// filter placeholders; LIMIT and OFFSET take the next two.
func buildTaskList(q repository.TaskQuery) taskListQuery {
	where := ` WHERE project_id = $1`
	args := []any{q.ProjectID}
	if q.Status != nil {
		args = append(args, string(*q.Status))
		where += ` AND status = $2`
	}
	order, ok := taskOrder[q.Sort]
	if !ok {
		order = taskOrder[repository.SortByDueDate]
	}
	n := len(args)
	return taskListQuery{
		countSQL:  `SELECT count(*) FROM tasks` + where,
		countArgs: args,
		pageSQL: `SELECT ` + taskColumns + ` FROM tasks` + where +
			` ORDER BY ` + order +
			` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2),
		pageArgs: append(append([]any{}, args...), q.Page.Size, q.Page.Offset()),
	}
}

// List counts and pages the matching tasks in one read-only transaction.
func (r *TaskRepository) List(ctx context.Context, q repository.TaskQuery) ([]entity.Task, int64, error) {
	stmt := buildTaskList(q)

	var (
		tasks []entity.Task
		total int64
	)
	err := pgx.BeginTxFunc(ctx, r.pool, readOnly, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, stmt.countSQL, stmt.countArgs...).Scan(&total); err != nil {
			return err
		}
		if q.Page.Beyond(total) {
			return nil
		}
		rows, err := tx.Query(ctx, stmt.pageSQL, stmt.pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				return err
			}
			tasks = append(tasks, *t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, classify(err)
	}
	return tasks, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4
		WHERE id = $5
	`, t.Title, t.Description, t.DueDate, string(t.Status), t.ID)
	if err != nil {
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var (
		t      entity.Task
		due    *time.Time
		status string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &status, &t.ProjectID); err != nil {
		return nil, err
	}
	t.DueDate = due
	t.Status = entity.TaskStatus(status)
	return &t, nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
