package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/task-tracker/internal/domain/repository"
	"github.com/oksasatya/task-tracker/pkg/pagination"
)

type ProjectService struct {
	Projects repo.ProjectRepository
	Users    repo.UserRepository
	Guard    *Guard
	Logger   *logrus.Logger
}

func NewProjectService(projects repo.ProjectRepository, users repo.UserRepository, guard *Guard, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Projects: projects, Users: users, Guard: guard, Logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput, identity string) (ProjectView, error) {
	if strings.TrimSpace(in.Title) == "" {
		return ProjectView{}, invalid("title", "is required")
	}
	u, err := resolveUser(ctx, s.Users, identity)
	if err != nil {
		return ProjectView{}, err
	}
	p := &entity.Project{
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
		OwnerID:     u.ID,
		OwnerEmail:  u.Email,
	}
	if err := s.Projects.Create(ctx, p); err != nil {
		return ProjectView{}, fmt.Errorf("create project: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"project_id": p.ID, "user_id": u.ID}).Info("project created")
	}
	return ToProjectView(p), nil
}

// ListMine pages through the caller's projects, newest first.
func (s *ProjectService) ListMine(ctx context.Context, identity string, page, size int) (pagination.Page[ProjectView], error) {
	u, err := resolveUser(ctx, s.Users, identity)
	if err != nil {
		return pagination.Page[ProjectView]{}, err
	}
	req := pagination.Request{Page: page, Size: size}
	projects, total, err := s.Projects.ListByOwner(ctx, u.ID, req)
	if err != nil {
		return pagination.Page[ProjectView]{}, fmt.Errorf("list projects: %w", err)
	}
	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, ToProjectView(&projects[i]))
	}
	return pagination.New(views, req, total), nil
}

func (s *ProjectService) Get(ctx context.Context, id int64, identity string) (ProjectView, error) {
	p, err := s.Guard.Project(ctx, id, identity)
	if err != nil {
		return ProjectView{}, err
	}
	return ToProjectView(p), nil
}

// Update replaces title and description; it is not a partial update.
func (s *ProjectService) Update(ctx context.Context, id int64, in ProjectInput, identity string) (ProjectView, error) {
	if strings.TrimSpace(in.Title) == "" {
		return ProjectView{}, invalid("title", "is required")
	}
	p, err := s.Guard.Project(ctx, id, identity)
	if err != nil {
		return ProjectView{}, err
	}
	p.Title = in.Title
	p.Description = in.Description
	if err := s.Projects.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProjectView{}, notFound("project", id)
		}
		return ProjectView{}, fmt.Errorf("update project %d: %w", id, err)
	}
	return ToProjectView(p), nil
}

// Delete removes the project and every task under it.
func (s *ProjectService) Delete(ctx context.Context, id int64, identity string) error {
	p, err := s.Guard.Project(ctx, id, identity)
	if err != nil {
		return err
	}
	if err := s.Projects.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("project", id)
		}
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"project_id": p.ID, "tasks": len(p.Tasks)}).Info("project deleted")
	}
	return nil
}
