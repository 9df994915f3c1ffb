package projects_interfaces

import (
	"context"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_models "taskboard/internal/features/projects/models"
	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// ProjectDeletionListener runs inside the transaction that deletes the project.
// Its writes must go through ctx so they roll back with the deletion.
type ProjectDeletionListener interface {
	OnBeforeProjectDeletion(ctx context.Context, projectID uuid.UUID) error
}

type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProjectRepository interface {
	CreateProjectWithManager(
		ctx context.Context,
		project *projects_models.Project,
		membership *projects_models.ProjectMembership,
	) error
	GetProjectByID(ctx context.Context, projectID uuid.UUID) (*projects_models.Project, error)
	UpdateProject(ctx context.Context, project *projects_models.Project, columns []string) error
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
	GetProjectsWithRolesByUserID(ctx context.Context, userID uuid.UUID) ([]projects_dto.ProjectResponseDTO, error)
}

type MembershipRepository interface {
	CreateMembership(ctx context.Context, membership *projects_models.ProjectMembership) error
	GetProjectMemberships(ctx context.Context, projectID uuid.UUID) ([]projects_models.ProjectMembership, error)
	GetProjectMembers(ctx context.Context, projectID uuid.UUID) ([]projects_dto.ProjectMemberResponseDTO, error)
	UpdateMemberRole(ctx context.Context, userID, projectID uuid.UUID, role users_enums.ProjectRole) error
	RemoveMember(ctx context.Context, userID, projectID uuid.UUID) error
}
