package repository

import (
	"context"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	"github.com/oksasatya/task-tracker/pkg/pagination"
)

// ProjectRepository stores projects. Every project it returns has its
// owner email and its tasks loaded.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	// ListByOwner returns the owner's projects ordered by id descending.
	ListByOwner(ctx context.Context, ownerID int64, page pagination.Request) ([]entity.Project, int64, error)
	Update(ctx context.Context, p *entity.Project) error
	// Delete removes the project together with all of its tasks.
	Delete(ctx context.Context, id int64) error
}
