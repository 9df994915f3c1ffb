package projects_models

import (
	"time"

	projects_enums "taskboard/internal/features/projects/enums"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID                    `json:"id"          gorm:"column:id"`
	Name        string                       `json:"name"        gorm:"column:name"`
	Description string                       `json:"description" gorm:"column:description"`
	Status      projects_enums.ProjectStatus `json:"status"      gorm:"column:status"`
	StartDate   time.Time                    `json:"startDate"   gorm:"column:start_date"`
	EndDate     time.Time                    `json:"endDate"     gorm:"column:end_date"`
	CreatedAt   time.Time                    `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                    `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
