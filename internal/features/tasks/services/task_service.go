package tasks_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/features/access"
	tasks_dto "taskboard/internal/features/tasks/dto"
	tasks_enums "taskboard/internal/features/tasks/enums"
	tasks_interfaces "taskboard/internal/features/tasks/interfaces"
	tasks_models "taskboard/internal/features/tasks/models"
	users_interfaces "taskboard/internal/features/users/interfaces"
	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepository tasks_interfaces.TaskRepository
	projectAccess  tasks_interfaces.ProjectAccessLoader
	userResolver   users_interfaces.UserResolver
	// what happens to tasks when their project is deleted
	deletionPolicy string
	logger         *slog.Logger
}

func NewTaskService(
	taskRepository tasks_interfaces.TaskRepository,
	projectAccess tasks_interfaces.ProjectAccessLoader,
	userResolver users_interfaces.UserResolver,
	deletionPolicy string,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		projectAccess:  projectAccess,
		userResolver:   userResolver,
		deletionPolicy: deletionPolicy,
		logger:         logger,
	}
}

func (s *TaskService) CreateTask(
	ctx context.Context,
	projectID uuid.UUID,
	request *tasks_dto.CreateTaskRequestDTO,
	creator *users_models.User,
) (*tasks_models.Task, error) {
	_, members, err := s.projectAccess.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(access.Request{
		CallerID: creator.ID,
		Action:   access.ActionCreateTask,
		Members:  members,
	}); err != nil {
		return nil, err
	}

	task := &tasks_models.Task{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(request.Name),
		Description: request.Description,
		Status:      request.Status,
		Priority:    request.Priority,
		DueDate:     request.DueDate,
		ProjectID:   projectID,
		AssigneeID:  request.AssigneeID,
		CreatedByID: creator.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if task.Status == "" {
		task.Status = tasks_enums.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = tasks_enums.TaskPriorityMedium
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.ensureAssigneeExists(ctx, task.AssigneeID); err != nil {
		return nil, err
	}

	if err := s.taskRepository.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "taskId", task.ID, "projectId", projectID, "userId", creator.ID)

	return task, nil
}

func (s *TaskService) GetProjectTasks(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	_, members, err := s.projectAccess.LoadProjectAccess(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionViewTask,
		Members:  members,
	}); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepository.GetTasksByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks, Count: len(tasks)}, nil
}

func (s *TaskService) GetTask(
	ctx context.Context,
	taskID uuid.UUID,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, members, err := s.loadTaskAccess(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionViewTask,
		Members:  members,
	}); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies the change set after the ownership rule has dropped the
// fields the caller may not touch. Dropped fields are ignored, not rejected.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, members, err := s.loadTaskAccess(ctx, taskID)
	if err != nil {
		return nil, err
	}

	decision := access.Authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionUpdateTask,
		Members:  members,
		Task:     &access.TaskRef{AssigneeID: task.AssigneeID},
	})
	if err := decision.Err(); err != nil {
		s.logDenied(access.ActionUpdateTask, user.ID, err)
		return nil, err
	}

	decision.Apply(request)

	// only columns the caller changed are written; a redacted field never
	// reaches the database, whatever the loaded row says
	var columns []string

	if request.ProjectID != nil && *request.ProjectID != task.ProjectID {
		if err := s.authorizeMove(ctx, *request.ProjectID, user); err != nil {
			return nil, err
		}
		task.ProjectID = *request.ProjectID
		columns = append(columns, "project_id")
	}

	if request.Name != nil {
		task.Name = strings.TrimSpace(*request.Name)
		columns = append(columns, "name")
	}
	if request.Description != nil {
		task.Description = *request.Description
		columns = append(columns, "description")
	}
	if request.Status != nil {
		task.Status = *request.Status
		columns = append(columns, "status")
	}
	if request.Priority != nil {
		task.Priority = *request.Priority
		columns = append(columns, "priority")
	}

	if request.ClearDueDate {
		task.DueDate = nil
		columns = append(columns, "due_date")
	} else if request.DueDate != nil {
		task.DueDate = request.DueDate
		columns = append(columns, "due_date")
	}

	if request.ClearAssignee {
		task.AssigneeID = nil
		columns = append(columns, "assignee_id")
	} else if request.AssigneeID != nil {
		if err := s.ensureAssigneeExists(ctx, request.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = request.AssigneeID
		columns = append(columns, "assignee_id")
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepository.UpdateTask(ctx, task, columns); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID uuid.UUID, user *users_models.User) error {
	task, members, err := s.loadTaskAccess(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionDeleteTask,
		Members:  members,
		Task:     &access.TaskRef{AssigneeID: task.AssigneeID},
	}); err != nil {
		return err
	}

	if err := s.taskRepository.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task deleted", "taskId", taskID, "projectId", task.ProjectID, "userId", user.ID)

	return nil
}

// OnBeforeProjectDeletion applies the configured policy to the project's tasks.
func (s *TaskService) OnBeforeProjectDeletion(ctx context.Context, projectID uuid.UUID) error {
	if s.deletionPolicy == config.TaskDeletionPolicyCascade {
		deleted, err := s.taskRepository.DeleteTasksByProjectID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to delete project tasks: %w", err)
		}

		s.logger.Info("Project tasks deleted", "projectId", projectID, "count", deleted)
		return nil
	}

	orphaned, err := s.taskRepository.CountTasksByProjectID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to count project tasks: %w", err)
	}

	if orphaned > 0 {
		s.logger.Warn("Project deleted with tasks left behind", "projectId", projectID, "count", orphaned)
	}

	return nil
}

// loadTaskAccess returns the task with the membership snapshot of its project.
// A task whose project is gone reports the project as not found.
func (s *TaskService) loadTaskAccess(
	ctx context.Context,
	taskID uuid.UUID,
) (*tasks_models.Task, *access.MembershipSet, error) {
	task, err := s.taskRepository.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil {
		return nil, nil, ErrTaskNotFound
	}

	_, members, err := s.projectAccess.LoadProjectAccess(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}

	return task, members, nil
}

// authorizeMove requires the caller to be able to create tasks in the destination project.
func (s *TaskService) authorizeMove(ctx context.Context, destinationID uuid.UUID, user *users_models.User) error {
	_, members, err := s.projectAccess.LoadProjectAccess(ctx, destinationID)
	if err != nil {
		return err
	}

	return s.authorize(access.Request{
		CallerID: user.ID,
		Action:   access.ActionCreateTask,
		Members:  members,
	})
}

func (s *TaskService) ensureAssigneeExists(ctx context.Context, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}

	exists, err := s.userResolver.UserExists(ctx, *assigneeID)
	if err != nil {
		return fmt.Errorf("failed to resolve assignee: %w", err)
	}

	if !exists {
		return ErrAssigneeNotFound
	}

	return nil
}

func (s *TaskService) authorize(request access.Request) error {
	if err := access.Authorize(request).Err(); err != nil {
		s.logDenied(request.Action, request.CallerID, err)
		return err
	}

	return nil
}

func (s *TaskService) logDenied(action access.Action, userID uuid.UUID, reason error) {
	s.logger.Debug("Access denied", "action", action, "userId", userID, "reason", reason)
}

func validateTask(task *tasks_models.Task) error {
	if task.Name == "" {
		return ErrEmptyName
	}

	if !task.Status.IsValid() {
		return ErrInvalidStatus
	}

	if !task.Priority.IsValid() {
		return ErrInvalidPriority
	}

	return nil
}
