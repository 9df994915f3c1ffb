package users_enums

type ProjectRole string

const (
	ProjectRoleManager ProjectRole = "Manager"
	ProjectRoleMember  ProjectRole = "Member"
	ProjectRoleViewer  ProjectRole = "Viewer"
)

// IsValid validates the ProjectRole
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleManager, ProjectRoleMember, ProjectRoleViewer:
		return true
	default:
		return false
	}
}

// Rank orders roles from least (1) to most (3) privileged; unknown roles rank 0.
func (r ProjectRole) Rank() int {
	switch r {
	case ProjectRoleManager:
		return 3
	case ProjectRoleMember:
		return 2
	case ProjectRoleViewer:
		return 1
	default:
		return 0
	}
}

func (r ProjectRole) AtLeast(other ProjectRole) bool {
	return r.Rank() >= other.Rank() && r.Rank() > 0
}

// OrDefault returns Viewer for an empty role.
func (r ProjectRole) OrDefault() ProjectRole {
	if r == "" {
		return ProjectRoleViewer
	}

	return r
}
