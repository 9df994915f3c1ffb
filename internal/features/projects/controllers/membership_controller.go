package projects_controllers

import (
	"net/http"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_services "taskboard/internal/features/projects/services"
	users_middleware "taskboard/internal/features/users/middleware"
	"taskboard/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *projects_services.MembershipService
}

func NewMembershipController(membershipService *projects_services.MembershipService) *MembershipController {
	return &MembershipController{membershipService: membershipService}
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	membershipRoutes := router.Group("/projects/:id/members")

	membershipRoutes.GET("", c.GetMembers)
	membershipRoutes.POST("", c.AddMember)
	membershipRoutes.PUT("/:userId", c.ChangeMemberRole)
	membershipRoutes.DELETE("/:userId", c.RemoveMember)
}

// GetMembers
// @Summary Get project members
// @Description Get project members in the order they joined
// @Tags project-members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/members [get]
func (c *MembershipController) GetMembers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	result, err := c.membershipService.GetMembers(ctx.Request.Context(), projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// AddMember
// @Summary Add member to project
// @Description Add an existing user to the project. Role defaults to Viewer.
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AddMemberRequestDTO true "Member data"
// @Success 201 {object} projects_dto.GetMembersResponseDTO
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var request projects_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := c.membershipService.AddMember(ctx.Request.Context(), projectID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Created(ctx, result)
}

// ChangeMemberRole
// @Summary Change member role
// @Description Change the role of a project member. Managers cannot change their own role.
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Param request body projects_dto.ChangeMemberRoleRequestDTO true "New role"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/members/{userId} [put]
func (c *MembershipController) ChangeMemberRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var request projects_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	err = c.membershipService.ChangeMemberRole(ctx.Request.Context(), projectID, memberUserID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, gin.H{"message": "Member role changed successfully"})
}

// RemoveMember
// @Summary Remove member from project
// @Description Remove a member from the project. Managers cannot remove themselves.
// @Tags project-members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := c.membershipService.RemoveMember(ctx.Request.Context(), projectID, memberUserID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, gin.H{"message": "Member removed successfully"})
}
