package users_middleware

import (
	"strings"

	users_models "taskboard/internal/features/users/models"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/response"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware resolves the bearer token and adds the caller to context
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := strings.TrimSpace(ctx.GetHeader("Authorization"))
		token = strings.TrimPrefix(token, "Bearer ")

		user, err := userService.ResolveCaller(ctx.Request.Context(), token)
		if err != nil {
			response.Abort(ctx, err)
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// GetUserFromContext helper function to extract user from gin context
func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	userInterface, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(*users_models.User)

	return user, ok
}
