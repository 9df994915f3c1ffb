package users_interfaces

import (
	"context"

	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *users_models.User) error
	GetUserByEmail(ctx context.Context, email string) (*users_models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error)
	ExistsByID(ctx context.Context, userID uuid.UUID) (bool, error)
	UpdateUserPassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error
}

// UserResolver is the slice of the identity provider other features depend on.
type UserResolver interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}
