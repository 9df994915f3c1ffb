package users_controllers

import (
	"net/http"

	users_dto "taskboard/internal/features/users/dto"
	users_middleware "taskboard/internal/features/users/middleware"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/response"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *users_services.UserService
}

func NewUserController(userService *users_services.UserService) *UserController {
	return &UserController{userService: userService}
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/register", c.Register)
	router.POST("/auth/login", c.Login)
}

func (c *UserController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", c.GetCurrentUser)
}

// Register
// @Summary Register a new user
// @Description Register a new user and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.RegisterRequestDTO true "User registration data"
// @Success 201 {object} users_dto.AuthResponseDTO
// @Failure 400
// @Router /auth/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var request users_dto.RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := c.userService.Register(ctx.Request.Context(), &request)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Created(ctx, result)
}

// Login
// @Summary Authenticate a user
// @Description Authenticate a user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.LoginRequestDTO true "User credentials"
// @Success 200 {object} users_dto.AuthResponseDTO
// @Failure 400
// @Failure 401
// @Router /auth/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var request users_dto.LoginRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := c.userService.Login(ctx.Request.Context(), &request)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// GetCurrentUser
// @Summary Get current user
// @Description Get the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_models.User
// @Failure 401
// @Router /auth/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, users_services.ErrInvalidToken)
		return
	}

	response.OK(ctx, user)
}
