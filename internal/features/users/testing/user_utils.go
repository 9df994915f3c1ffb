package users_testing

import (
	"context"
	"fmt"
	"testing"

	users_dto "taskboard/internal/features/users/dto"
	users_services "taskboard/internal/features/users/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type TestUser struct {
	ID    uuid.UUID
	Name  string
	Email string
	Token string
}

// CreateTestUser registers a user with a unique email.
func CreateTestUser(t *testing.T, userService *users_services.UserService) *TestUser {
	t.Helper()

	suffix := uuid.New().String()[:8]
	request := &users_dto.RegisterRequestDTO{
		Name:     "Test User " + suffix,
		Email:    fmt.Sprintf("user-%s@test.com", suffix),
		Password: "testpassword123",
	}

	result, err := userService.Register(context.Background(), request)
	require.NoError(t, err)

	return &TestUser{
		ID:    result.User.ID,
		Name:  result.User.Name,
		Email: result.User.Email,
		Token: result.Token,
	}
}

func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.New().String()[:8])
}
