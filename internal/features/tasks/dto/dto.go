package tasks_dto

import (
	"time"

	"taskboard/internal/features/access"
	tasks_enums "taskboard/internal/features/tasks/enums"
	tasks_models "taskboard/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Name        string                   `json:"name"        binding:"required,min=1,max=255"`
	Description string                   `json:"description"`
	Status      tasks_enums.TaskStatus   `json:"status"`
	Priority    tasks_enums.TaskPriority `json:"priority"`
	DueDate     *time.Time               `json:"dueDate"`
	AssigneeID  *uuid.UUID               `json:"assigneeId"`
}

// UpdateTaskRequestDTO is a partial update: nil fields are left as they are.
type UpdateTaskRequestDTO struct {
	Name        *string                   `json:"name"        binding:"omitempty,min=1,max=255"`
	Description *string                   `json:"description"`
	Status      *tasks_enums.TaskStatus   `json:"status"`
	Priority    *tasks_enums.TaskPriority `json:"priority"`
	DueDate     *time.Time                `json:"dueDate"`
	AssigneeID  *uuid.UUID                `json:"assigneeId"`
	// ClearDueDate removes the due date, DueDate is ignored when set
	ClearDueDate bool `json:"clearDueDate"`
	// ClearAssignee unassigns the task, AssigneeID is ignored when set
	ClearAssignee bool       `json:"clearAssignee"`
	ProjectID     *uuid.UUID `json:"projectId"`
}

func (r *UpdateTaskRequestDTO) Strip(field access.Field) {
	switch field {
	case access.FieldName:
		r.Name = nil
	case access.FieldDescription:
		r.Description = nil
	case access.FieldStatus:
		r.Status = nil
	case access.FieldPriority:
		r.Priority = nil
	case access.FieldDueDate:
		r.DueDate = nil
		r.ClearDueDate = false
	case access.FieldAssignee:
		r.AssigneeID = nil
		r.ClearAssignee = false
	case access.FieldProject:
		r.ProjectID = nil
	}
}

type ListTasksResponseDTO struct {
	Tasks []tasks_models.Task `json:"tasks"`
	Count int                 `json:"count"`
}
