package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/task-tracker/internal/domain/repository"
	"github.com/oksasatya/task-tracker/pkg/pagination"
)

type TaskService struct {
	Tasks  repo.TaskRepository
	Guard  *Guard
	Logger *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, guard *Guard, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Guard: guard, Logger: logger}
}

func (s *TaskService) Create(ctx context.Context, projectID int64, in TaskInput, identity string) (TaskDTO, error) {
	p, err := s.Guard.Project(ctx, projectID, identity)
	if err != nil {
		return TaskDTO{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return TaskDTO{}, invalid("title", "is required")
	}
	status := entity.TaskPending
	if in.Status != nil {
		if !in.Status.Valid() {
			return TaskDTO{}, invalidStatus()
		}
		status = *in.Status
	}
	t := &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		ProjectID:   p.ID,
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		if errors.Is(err, repo.ErrReference) {
			return TaskDTO{}, notFound("project", projectID)
		}
		return TaskDTO{}, fmt.Errorf("create task: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": t.ID, "project_id": p.ID}).Debug("task created")
	}
	return toTaskDTO(t), nil
}

// ListTasks authorizes the caller on the project before reading any task,
// then filters, orders and pages the project's tasks.
func (s *TaskService) ListTasks(ctx context.Context, projectID int64, identity string, in TaskListInput) (pagination.Page[TaskDTO], error) {
	if _, err := s.Guard.Project(ctx, projectID, identity); err != nil {
		return pagination.Page[TaskDTO]{}, err
	}
	if in.Status != nil && !in.Status.Valid() {
		return pagination.Page[TaskDTO]{}, invalidStatus()
	}
	req := pagination.Request{Page: in.Page, Size: in.Size}
	tasks, total, err := s.Tasks.List(ctx, repo.TaskQuery{
		ProjectID: projectID,
		Status:    in.Status,
		Sort:      in.Sort,
		Page:      req,
	})
	if err != nil {
		return pagination.Page[TaskDTO]{}, fmt.Errorf("list tasks: %w", err)
	}
	return pagination.Map(pagination.New(tasks, req, total), func(t entity.Task) TaskDTO {
		return toTaskDTO(&t)
	}), nil
}

func (s *TaskService) Get(ctx context.Context, taskID int64, identity string) (TaskDTO, error) {
	t, _, err := s.Guard.Task(ctx, taskID, identity)
	if err != nil {
		return TaskDTO{}, err
	}
	return toTaskDTO(t), nil
}

// Update applies a partial update: only non-nil patch fields overwrite.
func (s *TaskService) Update(ctx context.Context, taskID int64, in TaskPatch, identity string) (TaskDTO, error) {
	t, _, err := s.Guard.Task(ctx, taskID, identity)
	if err != nil {
		return TaskDTO{}, err
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.DueDate != nil {
		d := *in.DueDate
		t.DueDate = &d
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return TaskDTO{}, invalidStatus()
		}
		t.Status = *in.Status
	}
	if err := s.Tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TaskDTO{}, notFound("task", taskID)
		}
		return TaskDTO{}, fmt.Errorf("update task %d: %w", taskID, err)
	}
	return toTaskDTO(t), nil
}

func (s *TaskService) Delete(ctx context.Context, taskID int64, identity string) error {
	t, _, err := s.Guard.Task(ctx, taskID, identity)
	if err != nil {
		return err
	}
	if err := s.Tasks.Delete(ctx, t.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("task", taskID)
		}
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	return nil
}

func invalidStatus() error {
	return invalid("status", "must be one of PENDING, IN_PROGRESS, COMPLETED")
}
