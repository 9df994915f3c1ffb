package tasks_services

import "taskboard/internal/util/errs"

var (
	ErrTaskNotFound     = errs.NotFound("task not found")
	ErrInvalidStatus    = errs.Validation("invalid task status")
	ErrInvalidPriority  = errs.Validation("invalid task priority")
	ErrEmptyName        = errs.Validation("task name is required")
	ErrAssigneeNotFound = errs.Validation("assignee does not exist")
)
