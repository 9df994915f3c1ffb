package access

import (
	users_enums "taskboard/internal/features/users/enums"
	"taskboard/internal/util/errs"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreateProject    Action = "create_project"
	ActionViewProject      Action = "view_project"
	ActionUpdateProject    Action = "update_project"
	ActionDeleteProject    Action = "delete_project"
	ActionViewMembers      Action = "view_members"
	ActionAddMember        Action = "add_member"
	ActionChangeMemberRole Action = "change_member_role"
	ActionRemoveMember     Action = "remove_member"
	ActionViewTask         Action = "view_task"
	ActionCreateTask       Action = "create_task"
	ActionUpdateTask       Action = "update_task"
	ActionDeleteTask       Action = "delete_task"
)

var denialReasons = map[Action]string{
	ActionViewProject:      "insufficient permissions to view project",
	ActionUpdateProject:    "insufficient permissions to update project",
	ActionDeleteProject:    "only project managers can delete the project",
	ActionViewMembers:      "insufficient permissions to view project members",
	ActionAddMember:        "insufficient permissions to manage members",
	ActionChangeMemberRole: "insufficient permissions to manage members",
	ActionRemoveMember:     "insufficient permissions to remove members",
	ActionViewTask:         "insufficient permissions to view tasks of this project",
	ActionCreateTask:       "only project managers can create tasks",
	ActionUpdateTask:       "insufficient permissions to update this task",
	ActionDeleteTask:       "insufficient permissions to delete this task",
}

// Request describes one (caller, action, target) triple.
type Request struct {
	CallerID uuid.UUID
	Action   Action
	// Members is the role snapshot of the target project.
	Members *MembershipSet
	// TargetUserID is the member acted upon by membership actions.
	TargetUserID uuid.UUID
	// Task is the current state of the task for task update/delete.
	Task *TaskRef
}

// Authorize is the single decision point for project, membership and task actions.
func Authorize(request Request) Decision {
	if request.CallerID == uuid.Nil {
		return Deny(ErrNotAuthenticated)
	}

	if request.Action == ActionCreateProject {
		return Allow()
	}

	if _, known := denialReasons[request.Action]; !known {
		return Deny(ErrUnknownAction)
	}

	role, isMember := request.Members.RoleOf(request.CallerID)
	if !isMember {
		return deny(request.Action)
	}

	switch request.Action {
	case ActionViewProject, ActionViewMembers, ActionViewTask:
		return Allow()

	case ActionUpdateProject:
		if role != users_enums.ProjectRoleManager {
			return deny(request.Action)
		}
		return AllowWithRedaction(FieldMembers)

	case ActionDeleteProject, ActionAddMember, ActionCreateTask:
		return requireManager(role, request.Action)

	case ActionChangeMemberRole:
		if role != users_enums.ProjectRoleManager {
			return deny(request.Action)
		}
		if request.TargetUserID == request.CallerID {
			return Deny(ErrSelfRoleChange)
		}
		return Allow()

	case ActionRemoveMember:
		if role != users_enums.ProjectRoleManager {
			return deny(request.Action)
		}
		if request.TargetUserID == request.CallerID {
			return Deny(ErrSelfRemoval)
		}
		return Allow()

	case ActionUpdateTask, ActionDeleteTask:
		return authorizeTaskChange(request.CallerID, role, request.Task, request.Action)
	}

	return Deny(ErrUnknownAction)
}

func requireManager(role users_enums.ProjectRole, action Action) Decision {
	if role != users_enums.ProjectRoleManager {
		return deny(action)
	}

	return Allow()
}

func deny(action Action) Decision {
	return Deny(errs.Forbidden(denialReasons[action]))
}
