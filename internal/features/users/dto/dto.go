package users_dto

import (
	users_models "taskboard/internal/features/users/models"
)

type RegisterRequestDTO struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponseDTO struct {
	Token string             `json:"token"`
	User  *users_models.User `json:"user"`
}
