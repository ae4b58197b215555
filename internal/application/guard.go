package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/task-tracker/internal/domain/repository"
)

// Guard loads owned resources and confirms the caller owns them.
// A task is owned by whoever owns its project, so task checks always
// resolve through the parent project.
type Guard struct {
	Projects repo.ProjectRepository
	Tasks    repo.TaskRepository
}

func NewGuard(projects repo.ProjectRepository, tasks repo.TaskRepository) *Guard {
	return &Guard{Projects: projects, Tasks: tasks}
}

// Project returns the project if identity owns it.
func (g *Guard) Project(ctx context.Context, id int64, identity string) (*entity.Project, error) {
	p, err := g.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("project", id)
		}
		return nil, fmt.Errorf("load project %d: %w", id, err)
	}
	if err := authorize(ownerOf(p), identity); err != nil {
		return nil, err
	}
	return p, nil
}

// Task returns the task and its parent project if identity owns the project.
func (g *Guard) Task(ctx context.Context, id int64, identity string) (*entity.Task, *entity.Project, error) {
	t, err := g.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, notFound("task", id)
		}
		return nil, nil, fmt.Errorf("load task %d: %w", id, err)
	}
	p, err := g.Project(ctx, t.ProjectID, identity)
	if err != nil {
		// the parent vanished between the two reads
		if errors.Is(err, ErrNotFound) {
			return nil, nil, notFound("task", id)
		}
		return nil, nil, err
	}
	return t, p, nil
}

func ownerOf(p *entity.Project) string { return p.OwnerEmail }

func authorize(owner, identity string) error {
	if identity == "" || owner != identity {
		return ErrAccessDenied
	}
	return nil
}
