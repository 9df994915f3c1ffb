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

type ProjectController struct {
	projectService *projects_services.ProjectService
}

func NewProjectController(projectService *projects_services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects")

	projectRoutes.POST("", c.CreateProject)
	projectRoutes.GET("", c.GetProjects)
	projectRoutes.GET("/:id", c.GetProject)
	projectRoutes.PUT("/:id", c.UpdateProject)
	projectRoutes.DELETE("/:id", c.DeleteProject)
}

// CreateProject
// @Summary Create a new project
// @Description Create a new project, the caller becomes its manager
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.CreateProjectRequestDTO true "Project creation data"
// @Success 201 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := c.projectService.CreateProject(ctx.Request.Context(), &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Created(ctx, result)
}

// GetProjects
// @Summary List user's projects
// @Description Get list of projects the user is a member of
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 401 {object} response.Envelope
// @Router /projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	result, err := c.projectService.GetUserProjects(ctx.Request.Context(), user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// GetProject
// @Summary Get project details
// @Description Get a project with its members and the caller's role
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
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

	result, err := c.projectService.GetProject(ctx.Request.Context(), projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// UpdateProject
// @Summary Update project
// @Description Update project fields. Members in the body are ignored.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.UpdateProjectRequestDTO true "Project fields to change"
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
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

	var request projects_dto.UpdateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := c.projectService.UpdateProject(ctx.Request.Context(), projectID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// DeleteProject
// @Summary Delete project
// @Description Delete a project. Only project managers can delete it.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
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

	if err := c.projectService.DeleteProject(ctx.Request.Context(), projectID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, gin.H{"message": "Project deleted successfully"})
}
