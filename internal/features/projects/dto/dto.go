package projects_dto

import (
	"time"

	"taskboard/internal/features/access"
	projects_enums "taskboard/internal/features/projects/enums"
	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name        string                       `json:"name"        binding:"required,min=1,max=255"`
	Description string                       `json:"description"`
	Status      projects_enums.ProjectStatus `json:"status"`
	StartDate   time.Time                    `json:"startDate"   binding:"required"`
	EndDate     time.Time                    `json:"endDate"     binding:"required"`
}

// UpdateProjectRequestDTO is a partial update: nil fields are left as they are.
type UpdateProjectRequestDTO struct {
	Name        *string                       `json:"name"        binding:"omitempty,min=1,max=255"`
	Description *string                       `json:"description"`
	Status      *projects_enums.ProjectStatus `json:"status"`
	StartDate   *time.Time                    `json:"startDate"`
	EndDate     *time.Time                    `json:"endDate"`

	// Members is accepted for compatibility and always discarded, membership
	// only changes through the member endpoints.
	Members []access.Membership `json:"members,omitempty"`
}

func (r *UpdateProjectRequestDTO) Strip(field access.Field) {
	switch field {
	case access.FieldName:
		r.Name = nil
	case access.FieldDescription:
		r.Description = nil
	case access.FieldStatus:
		r.Status = nil
	case access.FieldStartDate:
		r.StartDate = nil
	case access.FieldEndDate:
		r.EndDate = nil
	case access.FieldMembers:
		r.Members = nil
	}
}

type ProjectResponseDTO struct {
	ID          uuid.UUID                    `json:"id"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Status      projects_enums.ProjectStatus `json:"status"`
	StartDate   time.Time                    `json:"startDate"`
	EndDate     time.Time                    `json:"endDate"`
	CreatedAt   time.Time                    `json:"createdAt"`
	UpdatedAt   time.Time                    `json:"updatedAt"`

	// Caller's role in this project
	UserRole *users_enums.ProjectRole `json:"userRole,omitempty"`
	// Populated for single project reads only
	Members []ProjectMemberResponseDTO `json:"members,omitempty"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// Membership DTOs
type AddMemberRequestDTO struct {
	UserID uuid.UUID               `json:"userId" binding:"required"`
	Role   users_enums.ProjectRole `json:"role"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.ProjectRole `json:"role" binding:"required"`
}

type ProjectMemberResponseDTO struct {
	ID        uuid.UUID               `json:"id"`
	UserID    uuid.UUID               `json:"userId"`
	Name      string                  `json:"name"`  // Populated from user join
	Email     string                  `json:"email"` // Populated from user join
	Role      users_enums.ProjectRole `json:"role"`
	CreatedAt time.Time               `json:"createdAt"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}
