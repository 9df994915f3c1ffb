package projects_models

import (
	"time"

	"taskboard/internal/features/access"
	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// ProjectMembership is one row of project_memberships. Rows are unique per
// (project_id, user_id) and are read back ordered by created_at, then id.
type ProjectMembership struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role"`
	CreatedAt time.Time               `json:"createdAt" gorm:"column:created_at"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}

// ToAccess drops the storage columns the authorization engine does not need.
func (m ProjectMembership) ToAccess() access.Membership {
	return access.Membership{UserID: m.UserID, Role: m.Role}
}

// ToMembershipSet builds the ordered snapshot of rows already sorted by the repository.
func ToMembershipSet(projectID uuid.UUID, rows []ProjectMembership) *access.MembershipSet {
	members := make([]access.Membership, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.ToAccess())
	}

	return access.NewMembershipSet(projectID, members...)
}
