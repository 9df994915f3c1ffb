package projects_services

import (
	"context"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_interfaces "taskboard/internal/features/projects/interfaces"
	projects_models "taskboard/internal/features/projects/models"
	users_enums "taskboard/internal/features/users/enums"
	users_interfaces "taskboard/internal/features/users/interfaces"
	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type projectRepositoryMock struct{ mock.Mock }

var _ projects_interfaces.ProjectRepository = (*projectRepositoryMock)(nil)

func (m *projectRepositoryMock) CreateProjectWithManager(
	ctx context.Context,
	project *projects_models.Project,
	membership *projects_models.ProjectMembership,
) error {
	return m.Called(ctx, project, membership).Error(0)
}

func (m *projectRepositoryMock) GetProjectByID(ctx context.Context, projectID uuid.UUID) (*projects_models.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects_models.Project), args.Error(1)
}

func (m *projectRepositoryMock) UpdateProject(
	ctx context.Context,
	project *projects_models.Project,
	columns []string,
) error {
	return m.Called(ctx, project, columns).Error(0)
}

func (m *projectRepositoryMock) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *projectRepositoryMock) GetProjectsWithRolesByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]projects_dto.ProjectResponseDTO, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projects_dto.ProjectResponseDTO), args.Error(1)
}

type membershipRepositoryMock struct{ mock.Mock }

var _ projects_interfaces.MembershipRepository = (*membershipRepositoryMock)(nil)

func (m *membershipRepositoryMock) CreateMembership(
	ctx context.Context,
	membership *projects_models.ProjectMembership,
) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *membershipRepositoryMock) GetProjectMemberships(
	ctx context.Context,
	projectID uuid.UUID,
) ([]projects_models.ProjectMembership, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projects_models.ProjectMembership), args.Error(1)
}

func (m *membershipRepositoryMock) GetProjectMembers(
	ctx context.Context,
	projectID uuid.UUID,
) ([]projects_dto.ProjectMemberResponseDTO, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projects_dto.ProjectMemberResponseDTO), args.Error(1)
}

func (m *membershipRepositoryMock) UpdateMemberRole(
	ctx context.Context,
	userID, projectID uuid.UUID,
	role users_enums.ProjectRole,
) error {
	return m.Called(ctx, userID, projectID, role).Error(0)
}

func (m *membershipRepositoryMock) RemoveMember(ctx context.Context, userID, projectID uuid.UUID) error {
	return m.Called(ctx, userID, projectID).Error(0)
}

type userResolverMock struct{ mock.Mock }

var _ users_interfaces.UserResolver = (*userResolverMock)(nil)

func (m *userResolverMock) GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users_models.User), args.Error(1)
}

func (m *userResolverMock) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type deletionListenerMock struct{ mock.Mock }

func (m *deletionListenerMock) OnBeforeProjectDeletion(ctx context.Context, projectID uuid.UUID) error {
	return m.Called(ctx, projectID).Error(0)
}

type txMarkerKey struct{}

// transactorStub runs fn with a marked context and records the outcome the
// way a database transaction would end.
type transactorStub struct {
	committed  bool
	rolledBack bool
}

func (s *transactorStub) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(context.WithValue(ctx, txMarkerKey{}, true)); err != nil {
		s.rolledBack = true
		return err
	}

	s.committed = true
	return nil
}

func inTransaction(ctx context.Context) bool {
	marked, _ := ctx.Value(txMarkerKey{}).(bool)
	return marked
}

func userWithID(id uuid.UUID) *users_models.User {
	return &users_models.User{ID: id}
}
