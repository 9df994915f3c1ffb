package tasks_models

import (
	"time"

	tasks_enums "taskboard/internal/features/tasks/enums"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID                `json:"id"          gorm:"column:id"`
	Name        string                   `json:"name"        gorm:"column:name"`
	Description string                   `json:"description" gorm:"column:description"`
	Status      tasks_enums.TaskStatus   `json:"status"      gorm:"column:status"`
	Priority    tasks_enums.TaskPriority `json:"priority"    gorm:"column:priority"`
	DueDate     *time.Time               `json:"dueDate"     gorm:"column:due_date"`
	ProjectID   uuid.UUID                `json:"projectId"   gorm:"column:project_id"`
	AssigneeID  *uuid.UUID               `json:"assigneeId"  gorm:"column:assignee_id"`
	CreatedByID uuid.UUID                `json:"createdById" gorm:"column:created_by_id"`
	CreatedAt   time.Time                `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
