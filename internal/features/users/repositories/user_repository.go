package users_repositories

import (
	"context"
	"errors"

	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email is already registered")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *users_models.User) error {
	err := storage.Conn(ctx, r.db).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}

	return err
}

// GetUserByEmail matches case-insensitively and returns nil when no user has the email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*users_models.User, error) {
	var user users_models.User

	err := storage.Conn(ctx, r.db).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	err := storage.Conn(ctx, r.db).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) ExistsByID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64

	err := storage.Conn(ctx, r.db).
		Model(&users_models.User{}).
		Where("id = ?", userID).
		Count(&count).Error

	return count > 0, err
}

func (r *UserRepository) UpdateUserPassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	return storage.Conn(ctx, r.db).Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("hashed_password", hashedPassword).Error
}
