package projects_repositories

import (
	"context"
	"time"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_models "taskboard/internal/features/projects/models"
	users_enums "taskboard/internal/features/users/enums"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// CreateMembership returns ErrDuplicateMembership when the user already
// belongs to the project, the unique index being the final arbiter.
func (r *MembershipRepository) CreateMembership(
	ctx context.Context,
	membership *projects_models.ProjectMembership,
) error {
	return createMembership(storage.Conn(ctx, r.db), membership)
}

func createMembership(db *gorm.DB, membership *projects_models.ProjectMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	err := db.Create(membership).Error
	if isUniqueViolation(err) {
		return ErrDuplicateMembership
	}

	return err
}

// GetProjectMemberships returns memberships in insertion order.
func (r *MembershipRepository) GetProjectMemberships(
	ctx context.Context,
	projectID uuid.UUID,
) ([]projects_models.ProjectMembership, error) {
	var memberships []projects_models.ProjectMembership

	err := storage.Conn(ctx, r.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&memberships).Error

	return memberships, err
}

func (r *MembershipRepository) GetProjectMembers(
	ctx context.Context,
	projectID uuid.UUID,
) ([]projects_dto.ProjectMemberResponseDTO, error) {
	members := make([]projects_dto.ProjectMemberResponseDTO, 0)

	err := storage.Conn(ctx, r.db).
		Table("project_memberships pm").
		Select("pm.id, pm.user_id, u.name, u.email, pm.role, pm.created_at").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", projectID).
		Order("pm.created_at ASC, pm.id ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) UpdateMemberRole(
	ctx context.Context,
	userID, projectID uuid.UUID,
	role users_enums.ProjectRole,
) error {
	return storage.Conn(ctx, r.db).
		Model(&projects_models.ProjectMembership{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Update("role", role).Error
}

func (r *MembershipRepository) RemoveMember(ctx context.Context, userID, projectID uuid.UUID) error {
	return storage.Conn(ctx, r.db).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&projects_models.ProjectMembership{}).Error
}
