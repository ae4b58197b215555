package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	"github.com/oksasatya/task-tracker/internal/domain/repository"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var taskOrder = map[repository.TaskSort]string{
	repository.SortByDueDate: "due_date ASC NULLS LAST, id ASC",
	repository.SortByTitle:   "title ASC, id ASC",
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	m := taskModel{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		ProjectID:   t.ProjectID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return classify(err)
	}
	t.ID = m.ID
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	var m taskModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return m.toEntity(), nil
}

func (r *TaskRepository) List(ctx context.Context, q repository.TaskQuery) ([]entity.Task, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("project_id = ?", q.ProjectID)
		if q.Status != nil {
			db = db.Where("status = ?", string(*q.Status))
		}
		return db
	}
	order, ok := taskOrder[q.Sort]
	if !ok {
		order = taskOrder[repository.SortByDueDate]
	}

	var (
		ms    []taskModel
		total int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&taskModel{}).Scopes(filter).Count(&total).Error; err != nil {
			return err
		}
		if q.Page.Beyond(total) {
			return nil
		}
		return tx.Scopes(filter).
			Order(order).
			Limit(q.Page.Size).
			Offset(q.Page.Offset()).
			Find(&ms).Error
	})
	if err != nil {
		return nil, 0, classify(err)
	}
	out := make([]entity.Task, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].toEntity())
	}
	return out, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	res := r.db.WithContext(ctx).Model(&taskModel{}).Where("id = ?", t.ID).Updates(map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"due_date":    t.DueDate,
		"status":      string(t.Status),
	})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&taskModel{}, "id = ?", id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
