package entity

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Task belongs to one project and has no owner of its own.
// DueDate is a calendar date; only the year, month and day are meaningful.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     *time.Time
	Status      TaskStatus
	ProjectID   int64
}
