package application

import (
	"math"
	"time"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
)

// ProjectView is a project together with its task completion statistics.
type ProjectView struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	CreatedAt          time.Time `json:"createdAt"`
	TotalTasks         int       `json:"totalTasks"`
	CompletedTasks     int       `json:"completedTasks"`
	ProgressPercentage float64   `json:"progressPercentage"`
}

// ToProjectView derives the view of p from the tasks already loaded on it.
func ToProjectView(p *entity.Project) ProjectView {
	total := len(p.Tasks)
	completed := 0
	for _, t := range p.Tasks {
		if t.Status == entity.TaskCompleted {
			completed++
		}
	}
	return ProjectView{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		CreatedAt:          p.CreatedAt,
		TotalTasks:         total,
		CompletedTasks:     completed,
		ProgressPercentage: progress(completed, total),
	}
}

// progress is completed/total as a percentage rounded half-up to 2 decimals.
func progress(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(completed) / float64(total) * 100
	return math.Floor(pct*100+0.5) / 100
}
