package access

import "taskboard/internal/util/errs"

var (
	ErrDuplicateMember  = errs.Validation("user is already a member of this project")
	ErrSelfRoleChange   = errs.Validation("cannot change your own role")
	ErrSelfRemoval      = errs.Validation("cannot remove yourself from the project")
	ErrInvalidRole      = errs.Validation("invalid project role")
	ErrMemberNotFound   = errs.NotFound("user is not a member of this project")
	ErrUserNotFound     = errs.NotFound("user not found")
	ErrUnknownAction    = errs.Forbidden("unknown action")
	ErrNotAuthenticated = errs.Authentication("caller is not authenticated")
)
