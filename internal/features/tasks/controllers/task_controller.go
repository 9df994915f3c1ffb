package tasks_controllers

import (
	"net/http"

	tasks_dto "taskboard/internal/features/tasks/dto"
	tasks_services "taskboard/internal/features/tasks/services"
	users_middleware "taskboard/internal/features/users/middleware"
	"taskboard/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

func NewTaskController(taskService *tasks_services.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/tasks", c.GetProjectTasks)
	router.POST("/projects/:id/tasks", c.CreateTask)

	taskRoutes := router.Group("/tasks")
	taskRoutes.GET("/:id", c.GetTask)
	taskRoutes.PUT("/:id", c.UpdateTask)
	taskRoutes.DELETE("/:id", c.DeleteTask)
}

// GetProjectTasks
// @Summary List project tasks
// @Description Get all tasks of a project. Any project member may list them.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/tasks [get]
func (c *TaskController) GetProjectTasks(ctx *gin.Context) {
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

	result, err := c.taskService.GetProjectTasks(ctx.Request.Context(), projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// CreateTask
// @Summary Create task
// @Description Create a task in a project. Only project managers can create tasks.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task data"
// @Success 201 {object} tasks_models.Task
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
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

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := c.taskService.CreateTask(ctx.Request.Context(), projectID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Created(ctx, result)
}

// GetTask
// @Summary Get task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	result, err := c.taskService.GetTask(ctx.Request.Context(), taskID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// UpdateTask
// @Summary Update task
// @Description Managers may change any field. The assigned member may change the task,
// @Description but changes to its assignee or project are ignored.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskRequestDTO true "Task fields to change"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var request tasks_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := c.taskService.UpdateTask(ctx.Request.Context(), taskID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, result)
}

// DeleteTask
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := c.taskService.DeleteTask(ctx.Request.Context(), taskID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.OK(ctx, gin.H{"message": "Task deleted successfully"})
}
