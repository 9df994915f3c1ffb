package projects_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskboard/internal/features/access"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_enums "taskboard/internal/features/projects/enums"
	projects_interfaces "taskboard/internal/features/projects/interfaces"
	projects_models "taskboard/internal/features/projects/models"
	users_enums "taskboard/internal/features/users/enums"
	users_models "taskboard/internal/features/users/models"
	cache_utils "taskboard/internal/util/cache"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
	"golang.org/x/sync/singleflight"
)

const membershipCachePrefix = "tb_memberships:"

type ProjectService struct {
	projectRepository        projects_interfaces.ProjectRepository
	membershipRepository     projects_interfaces.MembershipRepository
	transactor               projects_interfaces.Transactor
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener
	logger                   *slog.Logger

	membershipCacheUtil *cache_utils.CacheUtil[[]access.Membership]
	singleflight        singleflight.Group // Prevents thundering herd on membership loads
}

func NewProjectService(
	projectRepository projects_interfaces.ProjectRepository,
	membershipRepository projects_interfaces.MembershipRepository,
	transactor projects_interfaces.Transactor,
	cacheClient valkey.Client,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepository:    projectRepository,
		membershipRepository: membershipRepository,
		transactor:           transactor,
		logger:               logger,
		membershipCacheUtil: cache_utils.NewCacheUtil[[]access.Membership](
			cacheClient,
			membershipCachePrefix,
		),
	}
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

func (s *ProjectService) CreateProject(
	ctx context.Context,
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	if err := access.Authorize(access.Request{
		CallerID: creator.ID,
		Action:   access.ActionCreateProject,
	}).Err(); err != nil {
		return nil, err
	}

	status := request.Status
	if status == "" {
		status = projects_enums.ProjectStatusNotStarted
	}

	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(request.Name),
		Description: request.Description,
		Status:      status,
		StartDate:   request.StartDate.UTC(),
		EndDate:     request.EndDate.UTC(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := validateProject(project); err != nil {
		return nil, err
	}

	membership := &projects_models.ProjectMembership{
		UserID:    creator.ID,
		Role:      users_enums.ProjectRoleManager,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProjectWithManager(ctx, project, membership); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project created", "projectId", project.ID, "userId", creator.ID)

	managerRole := users_enums.ProjectRoleManager
	response := toProjectResponse(project, &managerRole)
	response.Members = []projects_dto.ProjectMemberResponseDTO{{
		ID:        membership.ID,
		UserID:    creator.ID,
		Name:      creator.Name,
		Email:     creator.Email,
		Role:      membership.Role,
		CreatedAt: membership.CreatedAt,
	}}

	return response, nil
}

func (s *ProjectService) GetProject(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project, members, err := s.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionViewProject,
		Members:  members,
	}); err != nil {
		return nil, err
	}

	memberList, err := s.membershipRepository.GetProjectMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	role, _ := members.RoleOf(user.ID)
	response := toProjectResponse(project, &role)
	response.Members = memberList

	return response, nil
}

// GetUserProjects lists only the projects the user holds a membership in.
func (s *ProjectService) GetUserProjects(
	ctx context.Context,
	user *users_models.User,
) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.projectRepository.GetProjectsWithRolesByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) UpdateProject(
	ctx context.Context,
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project, members, err := s.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return nil, err
	}

	decision := access.Authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionUpdateProject,
		Members:  members,
	})
	if err := decision.Err(); err != nil {
		s.logDenied(access.ActionUpdateProject, user.ID, err)
		return nil, err
	}

	decision.Apply(request)

	var columns []string
	if request.Name != nil {
		project.Name = strings.TrimSpace(*request.Name)
		columns = append(columns, "name")
	}
	if request.Description != nil {
		project.Description = *request.Description
		columns = append(columns, "description")
	}
	if request.Status != nil {
		project.Status = *request.Status
		columns = append(columns, "status")
	}
	if request.StartDate != nil {
		project.StartDate = request.StartDate.UTC()
		columns = append(columns, "start_date")
	}
	if request.EndDate != nil {
		project.EndDate = request.EndDate.UTC()
		columns = append(columns, "end_date")
	}

	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.projectRepository.UpdateProject(ctx, project, columns); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	role, _ := members.RoleOf(user.ID)

	return toProjectResponse(project, &role), nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID uuid.UUID, user *users_models.User) error {
	_, members, err := s.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return err
	}

	if err := s.authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionDeleteProject,
		Members:  members,
	}); err != nil {
		return err
	}

	// listeners and the delete commit or roll back together
	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		for _, listener := range s.projectDeletionListeners {
			if err := listener.OnBeforeProjectDeletion(ctx, projectID); err != nil {
				return err
			}
		}

		return s.projectRepository.DeleteProject(ctx, projectID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.InvalidateMemberships(ctx, projectID)

	s.logger.Info("Project deleted", "projectId", projectID, "userId", user.ID)

	return nil
}

// LoadProjectAccess returns the project with its current membership snapshot,
// or ErrProjectNotFound.
func (s *ProjectService) LoadProjectAccess(
	ctx context.Context,
	projectID uuid.UUID,
) (*projects_models.Project, *access.MembershipSet, error) {
	project, err := s.projectRepository.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, nil, ErrProjectNotFound
	}

	members, err := s.GetMembershipSet(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	return project, members, nil
}

// GetMembershipSet reads through the membership cache. Snapshots are stored
// under the cache version read before the database query, so a load that
// overlaps a membership write is never served after that write. Concurrent
// misses for the same version share one query.
func (s *ProjectService) GetMembershipSet(ctx context.Context, projectID uuid.UUID) (*access.MembershipSet, error) {
	key := projectID.String()

	version, cacheable := s.membershipCacheUtil.CurrentVersion(ctx, key)
	if cacheable {
		if cached := s.membershipCacheUtil.GetVersioned(ctx, key, version); cached != nil {
			return access.NewMembershipSet(projectID, *cached...), nil
		}
	}

	result, err, _ := s.singleflight.Do(key+":"+version, func() (any, error) {
		memberships, err := s.membershipRepository.GetProjectMemberships(ctx, projectID)
		if err != nil {
			return nil, err
		}

		snapshot := projects_models.ToMembershipSet(projectID, memberships).Members()

		if cacheable {
			s.membershipCacheUtil.SetVersioned(ctx, key, version, &snapshot)
		}

		return snapshot, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project memberships: %w", err)
	}

	snapshot, ok := result.([]access.Membership)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to memberships")
	}

	return access.NewMembershipSet(projectID, snapshot...), nil
}

// InvalidateMemberships must be called after every committed membership write.
func (s *ProjectService) InvalidateMemberships(ctx context.Context, projectID uuid.UUID) {
	if err := s.membershipCacheUtil.BumpVersion(ctx, projectID.String()); err != nil {
		s.logger.Error("Failed to invalidate membership cache", "projectId", projectID, "error", err)
	}
}

func (s *ProjectService) authorize(request access.Request) error {
	if err := access.Authorize(request).Err(); err != nil {
		s.logDenied(request.Action, request.CallerID, err)
		return err
	}

	return nil
}

func (s *ProjectService) logDenied(action access.Action, userID uuid.UUID, reason error) {
	s.logger.Debug("Access denied", "action", action, "userId", userID, "reason", reason)
}

func validateProject(project *projects_models.Project) error {
	if project.Name == "" {
		return ErrEmptyName
	}

	if !project.Status.IsValid() {
		return ErrInvalidStatus
	}

	if project.EndDate.Before(project.StartDate) {
		return ErrInvalidDateRange
	}

	return nil
}

func toProjectResponse(
	project *projects_models.Project,
	role *users_enums.ProjectRole,
) *projects_dto.ProjectResponseDTO {
	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		UserRole:    role,
	}
}
