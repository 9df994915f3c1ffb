package users_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	users_dto "taskboard/internal/features/users/dto"
	users_interfaces "taskboard/internal/features/users/interfaces"
	users_models "taskboard/internal/features/users/models"
	users_repositories "taskboard/internal/features/users/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type JWTSettings struct {
	Secret string
	Expiry time.Duration
}

// UserService is the identity provider: it owns credentials and resolves
// bearer tokens to users.
type UserService struct {
	userRepository users_interfaces.UserRepository
	jwt            JWTSettings
	logger         *slog.Logger
}

func NewUserService(
	userRepository users_interfaces.UserRepository,
	jwtSettings JWTSettings,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		jwt:            jwtSettings,
		logger:         logger,
	}
}

func (s *UserService) Register(
	ctx context.Context,
	request *users_dto.RegisterRequestDTO,
) (*users_dto.AuthResponseDTO, error) {
	email := normalizeEmail(request.Email)

	existingUser, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users_models.User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(request.Name),
		Email:          email,
		HashedPassword: string(hashedPassword),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		// lost a race against a concurrent registration with the same email
		if errors.Is(err, users_repositories.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "userId", user.ID)

	return s.issue(user)
}

func (s *UserService) Login(
	ctx context.Context,
	request *users_dto.LoginRequestDTO,
) (*users_dto.AuthResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// ResolveCaller maps a bearer token to its user. Any malformed, expired or
// dangling token is an authentication error.
func (s *UserService) ResolveCaller(ctx context.Context, token string) (*users_models.User, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwt.Secret), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (string, error) {
	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": now.Add(s.jwt.Expiry).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.jwt.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *UserService) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.userRepository.ExistsByID(ctx, userID)
}

// ChangeUserPasswordByEmail backs the --new-password command line flag.
func (s *UserService) ChangeUserPasswordByEmail(ctx context.Context, email string, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters long")
	}

	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed", "userId", user.ID)

	return nil
}

func (s *UserService) issue(user *users_models.User) (*users_dto.AuthResponseDTO, error) {
	token, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &users_dto.AuthResponseDTO{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
