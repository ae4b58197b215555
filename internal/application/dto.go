package application

import (
	"time"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/task-tracker/internal/domain/repository"
)

// DateLayout is the wire format of task due dates.
const DateLayout = "2006-01-02"

type TaskDTO struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DueDate     *string           `json:"dueDate"`
	Status      entity.TaskStatus `json:"status"`
	ProjectID   int64             `json:"projectId"`
}

func toTaskDTO(t *entity.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     formatDate(t.DueDate),
		Status:      t.Status,
		ProjectID:   t.ProjectID,
	}
}

func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(DateLayout)
	return &s
}

type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func toUserDTO(u *entity.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

// ProjectInput is the full replacement body of a project.
type ProjectInput struct {
	Title       string
	Description string
}

// TaskInput creates a task. A nil Status means PENDING.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      *entity.TaskStatus
}

// TaskPatch carries only the fields to overwrite; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *entity.TaskStatus
}

// ProfilePatch carries only the profile fields to overwrite.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
}

// TaskListInput selects, orders and pages the tasks of one project.
type TaskListInput struct {
	Status *entity.TaskStatus
	Sort   repo.TaskSort
	Page   int
	Size   int
}
