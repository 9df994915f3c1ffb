package tasks_interfaces

import (
	"context"

	"taskboard/internal/features/access"
	projects_models "taskboard/internal/features/projects/models"
	tasks_models "taskboard/internal/features/tasks/models"

	"github.com/google/uuid"
)

type TaskRepository interface {
	CreateTask(ctx context.Context, task *tasks_models.Task) error
	GetTaskByID(ctx context.Context, taskID uuid.UUID) (*tasks_models.Task, error)
	GetTasksByProjectID(ctx context.Context, projectID uuid.UUID) ([]tasks_models.Task, error)
	UpdateTask(ctx context.Context, task *tasks_models.Task, columns []string) error
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
	DeleteTasksByProjectID(ctx context.Context, projectID uuid.UUID) (int64, error)
	CountTasksByProjectID(ctx context.Context, projectID uuid.UUID) (int64, error)
}

// ProjectAccessLoader resolves a project together with its membership snapshot.
type ProjectAccessLoader interface {
	LoadProjectAccess(
		ctx context.Context,
		projectID uuid.UUID,
	) (*projects_models.Project, *access.MembershipSet, error)
}
