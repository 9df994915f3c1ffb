package access

import (
	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// TaskRef is the part of a stored task the ownership rule looks at.
type TaskRef struct {
	AssigneeID *uuid.UUID
}

func (t *TaskRef) IsAssignedTo(userID uuid.UUID) bool {
	if t == nil || t.AssigneeID == nil {
		return false
	}

	return *t.AssigneeID == userID
}

// authorizeTaskChange lets a Manager change any task of the project and a
// Member change the task assigned to them. A Member's update can never
// touch the assignee or the owning project.
func authorizeTaskChange(
	callerID uuid.UUID,
	role users_enums.ProjectRole,
	task *TaskRef,
	action Action,
) Decision {
	if role == users_enums.ProjectRoleManager {
		return Allow()
	}

	if role != users_enums.ProjectRoleMember || !task.IsAssignedTo(callerID) {
		return deny(action)
	}

	if action == ActionUpdateTask {
		return AllowWithRedaction(FieldAssignee, FieldProject)
	}

	return Allow()
}
