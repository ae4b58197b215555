package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	"github.com/oksasatya/task-tracker/internal/domain/repository"
	"github.com/oksasatya/task-tracker/pkg/pagination"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func withTasksAndOwner(db *gorm.DB) *gorm.DB {
	return db.Joins("User").Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("tasks.id")
	})
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	m := projectModel{
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UserID:      p.OwnerID,
	}
	if err := r.db.WithContext(ctx).Omit("User", "Tasks").Create(&m).Error; err != nil {
		return classify(err)
	}
	p.ID, p.CreatedAt = m.ID, m.CreatedAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	var m projectModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Scopes(withTasksAndOwner).First(&m, "projects.id = ?", id).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return m.toEntity(), nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64, page pagination.Request) ([]entity.Project, int64, error) {
	var (
		ms    []projectModel
		total int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&projectModel{}).Where("user_id = ?", ownerID).Count(&total).Error; err != nil {
			return err
		}
		if page.Beyond(total) {
			return nil
		}
		return tx.Scopes(withTasksAndOwner).
			Where("projects.user_id = ?", ownerID).
			Order("projects.id DESC").
			Limit(page.Size).
			Offset(page.Offset()).
			Find(&ms).Error
	})
	if err != nil {
		return nil, 0, classify(err)
	}
	out := make([]entity.Project, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].toEntity())
	}
	return out, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	res := r.db.WithContext(ctx).Model(&projectModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"title":       p.Title,
		"description": p.Description,
	})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the tasks and the project in one transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&taskModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&projectModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
	return classify(err)
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
