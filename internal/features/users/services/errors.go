package users_services

import "taskboard/internal/util/errs"

var (
	ErrEmailTaken         = errs.Validation("user with this email already exists")
	ErrInvalidCredentials = errs.Authentication("invalid email or password")
	ErrTokenRequired      = errs.Authentication("authorization token required")
	ErrInvalidToken       = errs.Authentication("invalid token")
	ErrUserNotFound       = errs.NotFound("user not found")
)
