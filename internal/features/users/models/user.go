package users_models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"         gorm:"column:hashed_password"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
