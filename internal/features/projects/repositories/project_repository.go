package projects_repositories

import (
	"context"
	"errors"
	"time"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_enums "taskboard/internal/features/projects/enums"
	projects_models "taskboard/internal/features/projects/models"
	users_enums "taskboard/internal/features/users/enums"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateProjectWithManager stores the project and its first membership atomically.
func (r *ProjectRepository) CreateProjectWithManager(
	ctx context.Context,
	project *projects_models.Project,
	membership *projects_models.ProjectMembership,
) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = project.CreatedAt

	return storage.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		membership.ProjectID = project.ID
		return createMembership(tx, membership)
	})
}

// GetProjectByID returns nil when the project does not exist.
func (r *ProjectRepository) GetProjectByID(ctx context.Context, projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := storage.Conn(ctx, r.db).Where("id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

// UpdateProject writes only the given columns and updated_at, so columns the
// caller did not change keep whatever value is stored now.
func (r *ProjectRepository) UpdateProject(
	ctx context.Context,
	project *projects_models.Project,
	columns []string,
) error {
	project.UpdatedAt = time.Now().UTC()

	return storage.Conn(ctx, r.db).
		Model(project).
		Select(append(columns, "updated_at")).
		Updates(project).Error
}

// DeleteProject removes the project. Memberships go with it through the
// foreign key, tasks are handled by deletion listeners.
func (r *ProjectRepository) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	return storage.Conn(ctx, r.db).Delete(&projects_models.Project{}, projectID).Error
}

type projectWithRole struct {
	ID          uuid.UUID
	Name        string
	Description string
	Status      projects_enums.ProjectStatus
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserRole    users_enums.ProjectRole
}

// GetProjectsWithRolesByUserID lists the projects userID is a member of, with its role in each.
func (r *ProjectRepository) GetProjectsWithRolesByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]projects_dto.ProjectResponseDTO, error) {
	var rows []projectWithRole

	err := storage.Conn(ctx, r.db).
		Table("projects p").
		Select("p.id, p.name, p.description, p.status, p.start_date, p.end_date, " +
			"p.created_at, p.updated_at, pm.role AS user_role").
		Joins("JOIN project_memberships pm ON p.id = pm.project_id").
		Where("pm.user_id = ?", userID).
		Order("p.name ASC, p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]projects_dto.ProjectResponseDTO, 0, len(rows))
	for _, row := range rows {
		role := row.UserRole
		results = append(results, projects_dto.ProjectResponseDTO{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Status:      row.Status,
			StartDate:   row.StartDate,
			EndDate:     row.EndDate,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
			UserRole:    &role,
		})
	}

	return results, nil
}
