package projects_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskboard/internal/features/access"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_interfaces "taskboard/internal/features/projects/interfaces"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_interfaces "taskboard/internal/features/users/interfaces"
	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository projects_interfaces.MembershipRepository
	projectService       *ProjectService
	userResolver         users_interfaces.UserResolver
	logger               *slog.Logger
}

func NewMembershipService(
	membershipRepository projects_interfaces.MembershipRepository,
	projectService *ProjectService,
	userResolver users_interfaces.UserResolver,
	logger *slog.Logger,
) *MembershipService {
	return &MembershipService{
		membershipRepository: membershipRepository,
		projectService:       projectService,
		userResolver:         userResolver,
		logger:               logger,
	}
}

func (s *MembershipService) GetMembers(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	_, members, err := s.projectService.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.projectService.authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionViewMembers,
		Members:  members,
	}); err != nil {
		return nil, err
	}

	memberList, err := s.membershipRepository.GetProjectMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	return &projects_dto.GetMembersResponseDTO{
		Members: memberList,
	}, nil
}

func (s *MembershipService) AddMember(
	ctx context.Context,
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	_, members, err := s.projectService.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.projectService.authorize(access.Request{
		CallerID:     addedBy.ID,
		Action:       access.ActionAddMember,
		Members:      members,
		TargetUserID: request.UserID,
	}); err != nil {
		return nil, err
	}

	lookup := func(userID uuid.UUID) (bool, error) {
		return s.userResolver.UserExists(ctx, userID)
	}

	if err := members.AddMember(request.UserID, request.Role, lookup); err != nil {
		return nil, err
	}

	role, _ := members.RoleOf(request.UserID)
	membership := &projects_models.ProjectMembership{
		UserID:    request.UserID,
		ProjectID: projectID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(ctx, membership); err != nil {
		if errors.Is(err, projects_repositories.ErrDuplicateMembership) {
			return nil, access.ErrDuplicateMember
		}

		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.projectService.InvalidateMemberships(ctx, projectID)

	s.logger.Info(
		"Member added",
		"projectId", projectID,
		"userId", request.UserID,
		"role", role,
		"addedBy", addedBy.ID,
	)

	return s.GetMembers(ctx, projectID, addedBy)
}

func (s *MembershipService) ChangeMemberRole(
	ctx context.Context,
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	request *projects_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	_, members, err := s.projectService.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return err
	}

	if err := s.projectService.authorize(access.Request{
		CallerID:     changedBy.ID,
		Action:       access.ActionChangeMemberRole,
		Members:      members,
		TargetUserID: memberUserID,
	}); err != nil {
		return err
	}

	if err := members.UpdateRole(changedBy.ID, memberUserID, request.Role); err != nil {
		return err
	}

	if err := s.membershipRepository.UpdateMemberRole(ctx, memberUserID, projectID, request.Role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.projectService.InvalidateMemberships(ctx, projectID)

	s.logger.Info(
		"Member role changed",
		"projectId", projectID,
		"userId", memberUserID,
		"role", request.Role,
		"changedBy", changedBy.ID,
	)

	return nil
}

func (s *MembershipService) RemoveMember(
	ctx context.Context,
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	_, members, err := s.projectService.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return err
	}

	if err := s.projectService.authorize(access.Request{
		CallerID:     removedBy.ID,
		Action:       access.ActionRemoveMember,
		Members:      members,
		TargetUserID: memberUserID,
	}); err != nil {
		return err
	}

	if err := members.RemoveMember(removedBy.ID, memberUserID); err != nil {
		return err
	}

	if err := s.membershipRepository.RemoveMember(ctx, memberUserID, projectID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.projectService.InvalidateMemberships(ctx, projectID)

	s.logger.Info("Member removed", "projectId", projectID, "userId", memberUserID, "removedBy", removedBy.ID)

	return nil
}
