package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	"github.com/oksasatya/task-tracker/internal/domain/repository"
	"github.com/oksasatya/task-tracker/pkg/pagination"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

var readOnly = pgx.TxOptions{AccessMode: pgx.ReadOnly}

const projectSelect = `
	SELECT p.id, p.title, p.description, p.created_at, p.user_id, u.email
	FROM projects p
	JOIN users u ON u.id = p.user_id`

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (title, description, created_at, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, p.Title, p.Description, p.CreatedAt, p.OwnerID)

	return classify(row.Scan(&p.ID, &p.CreatedAt))
}

// GetByID loads the project and its tasks in one read-only transaction.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	var p *entity.Project
	err := pgx.BeginTxFunc(ctx, r.pool, readOnly, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, projectSelect+` WHERE p.id = $1`, id)
		var err error
		if p, err = scanProject(row); err != nil {
			return err
		}
		byProject, err := loadTasks(ctx, tx, []int64{p.ID})
		if err != nil {
			return err
		}
		p.Tasks = byProject[p.ID]
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64, page pagination.Request) ([]entity.Project, int64, error) {
	var (
		projects []entity.Project
		total    int64
	)
	err := pgx.BeginTxFunc(ctx, r.pool, readOnly, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM projects WHERE user_id = $1`, ownerID).Scan(&total); err != nil {
			return err
		}
		if page.Beyond(total) {
			return nil
		}
		rows, err := tx.Query(ctx, projectSelect+`
			WHERE p.user_id = $1
			ORDER BY p.id DESC
			LIMIT $2 OFFSET $3`, ownerID, page.Size, page.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()
		ids := make([]int64, 0, page.Size)
		for rows.Next() {
			p, err := scanProject(rows)
			if err != nil {
				return err
			}
			projects = append(projects, *p)
			ids = append(ids, p.ID)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		byProject, err := loadTasks(ctx, tx, ids)
		if err != nil {
			return err
		}
		for i := range projects {
			projects[i].Tasks = byProject[projects[i].ID]
		}
		return nil
	})
	if err != nil {
		return nil, 0, classify(err)
	}
	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE projects SET title = $1, description = $2 WHERE id = $3
	`, p.Title, p.Description, p.ID)
	if err != nil {
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to remove the project's tasks.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanProject(row rowScanner) (*entity.Project, error) {
	p := &entity.Project{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.OwnerID, &p.OwnerEmail); err != nil {
		return nil, err
	}
	return p, nil
}

func loadTasks(ctx context.Context, tx pgx.Tx, projectIDs []int64) (map[int64][]entity.Task, error) {
	rows, err := tx.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ANY($1) ORDER BY id`, projectIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int64][]entity.Task, len(projectIDs))
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out[t.ProjectID] = append(out[t.ProjectID], *t)
	}
	return out, rows.Err()
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
