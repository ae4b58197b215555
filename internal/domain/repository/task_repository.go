package repository

import (
	"context"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	"github.com/oksasatya/task-tracker/pkg/pagination"
)

// TaskSort selects the ordering of a task listing.
type TaskSort int

const (
	// SortByDueDate orders by due date ascending, undated tasks last.
	SortByDueDate TaskSort = iota
	// SortByTitle orders by title ascending.
	SortByTitle
)

// TaskQuery describes a listing of the tasks of one project.
type TaskQuery struct {
	ProjectID int64
	Status    *entity.TaskStatus
	Sort      TaskSort
	Page      pagination.Request
}

type TaskRepository interface {
	// Create returns ErrReference when the project no longer exists.
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	List(ctx context.Context, q TaskQuery) ([]entity.Task, int64, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id int64) error
}
