package sqlite

import (
	"time"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
)

type userModel struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null;default:''"`
	LastName     string `gorm:"not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type projectModel struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	CreatedAt   time.Time
	UserID      int64       `gorm:"not null;index"`
	User        userModel   `gorm:"foreignKey:UserID"`
	Tasks       []taskModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (projectModel) TableName() string { return "projects" }

type taskModel struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	DueDate     *time.Time
	Status      string `gorm:"not null;default:PENDING"`
	ProjectID   int64  `gorm:"not null;index"`
}

func (taskModel) TableName() string { return "tasks" }

func (m *userModel) toEntity() *entity.User {
	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.PasswordHash,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *projectModel) toEntity() *entity.Project {
	p := &entity.Project{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		OwnerID:     m.UserID,
		OwnerEmail:  m.User.Email,
		Tasks:       make([]entity.Task, 0, len(m.Tasks)),
	}
	for i := range m.Tasks {
		p.Tasks = append(p.Tasks, *m.Tasks[i].toEntity())
	}
	return p
}

func (m *taskModel) toEntity() *entity.Task {
	return &entity.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     m.DueDate,
		Status:      entity.TaskStatus(m.Status),
		ProjectID:   m.ProjectID,
	}
}
