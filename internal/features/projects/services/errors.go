package projects_services

import "taskboard/internal/util/errs"

var (
	ErrProjectNotFound  = errs.NotFound("project not found")
	ErrInvalidStatus    = errs.Validation("invalid project status")
	ErrInvalidDateRange = errs.Validation("end date must not be before start date")
	ErrEmptyName        = errs.Validation("project name is required")
)
