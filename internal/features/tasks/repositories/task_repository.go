package tasks_repositories

import (
	"context"
	"errors"
	"time"

	tasks_models "taskboard/internal/features/tasks/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.UpdatedAt = task.CreatedAt

	return storage.Conn(ctx, r.db).Create(task).Error
}

// GetTaskByID returns nil when the task does not exist.
func (r *TaskRepository) GetTaskByID(ctx context.Context, taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	err := storage.Conn(ctx, r.db).Where("id = ?", taskID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) GetTasksByProjectID(ctx context.Context, projectID uuid.UUID) ([]tasks_models.Task, error) {
	tasks := make([]tasks_models.Task, 0)

	err := storage.Conn(ctx, r.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error

	return tasks, err
}

// UpdateTask writes only the given columns and updated_at. Selected columns are
// written even when zero, so a nil assignee clears it.
func (r *TaskRepository) UpdateTask(ctx context.Context, task *tasks_models.Task, columns []string) error {
	task.UpdatedAt = time.Now().UTC()

	return storage.Conn(ctx, r.db).
		Model(task).
		Select(append(columns, "updated_at")).
		Updates(task).Error
}

func (r *TaskRepository) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return storage.Conn(ctx, r.db).Delete(&tasks_models.Task{}, taskID).Error
}

func (r *TaskRepository) DeleteTasksByProjectID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	result := storage.Conn(ctx, r.db).
		Where("project_id = ?", projectID).
		Delete(&tasks_models.Task{})

	return result.RowsAffected, result.Error
}

func (r *TaskRepository) CountTasksByProjectID(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64

	err := storage.Conn(ctx, r.db).
		Model(&tasks_models.Task{}).
		Where("project_id = ?", projectID).
		Count(&count).Error

	return count, err
}
