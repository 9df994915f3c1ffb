package tasks_controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	app_testing "taskboard/internal/app/testing"
	"taskboard/internal/config"
	projects_testing "taskboard/internal/features/projects/testing"
	tasks_dto "taskboard/internal/features/tasks/dto"
	tasks_enums "taskboard/internal/features/tasks/enums"
	tasks_models "taskboard/internal/features/tasks/models"
	users_enums "taskboard/internal/features/users/enums"
	users_testing "taskboard/internal/features/users/testing"
	test_utils "taskboard/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateTask_WhenCallerIsManager_TaskCreatedWithDefaults(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Tasks", manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Write docs", nil, manager)

	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, project.ID, task.ProjectID)
	assert.Equal(t, tasks_enums.TaskStatusTodo, task.Status)
	assert.Equal(t, tasks_enums.TaskPriorityMedium, task.Priority)
	assert.Equal(t, manager.ID, task.CreatedByID)
	assert.Nil(t, task.AssigneeID)
}

func Test_CreateTask_WhenCallerIsMember_ReturnsForbidden(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	member := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Managed", manager)
	projects_testing.AddMemberToProject(t, router, project.ID, member, users_enums.ProjectRoleMember, manager)

	resp := test_utils.MakePostRequest(
		t,
		router,
		projects_testing.TasksURL(project.ID),
		projects_testing.Bearer(member),
		tasks_dto.CreateTaskRequestDTO{Name: "Sneaky"},
		http.StatusForbidden,
	)
	assert.Equal(t, "only project managers can create tasks", test_utils.ErrorOf(t, resp))
}

func Test_CreateTask_WithUnknownAssignee_ReturnsBadRequest(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Assignees", manager)
	ghost := uuid.New()

	resp := test_utils.MakePostRequest(
		t,
		router,
		projects_testing.TasksURL(project.ID),
		projects_testing.Bearer(manager),
		tasks_dto.CreateTaskRequestDTO{Name: "Haunted", AssigneeID: &ghost},
		http.StatusBadRequest,
	)
	assert.Equal(t, "assignee does not exist", test_utils.ErrorOf(t, resp))
}

func Test_CreateTask_WithInvalidStatus_ReturnsBadRequest(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Statuses", manager)

	test_utils.MakePostRequest(
		t,
		router,
		projects_testing.TasksURL(project.ID),
		projects_testing.Bearer(manager),
		tasks_dto.CreateTaskRequestDTO{Name: "Odd", Status: "Someday"},
		http.StatusBadRequest,
	)
}

func Test_GetProjectTasks_WhenCallerIsViewer_ReturnsTasks(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	viewer := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Readable", manager)
	projects_testing.AddMemberToProject(t, router, project.ID, viewer, users_enums.ProjectRoleViewer, manager)
	projects_testing.CreateTestTask(t, router, project.ID, "First", nil, manager)
	projects_testing.CreateTestTask(t, router, project.ID, "Second", nil, manager)

	var result tasks_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		projects_testing.TasksURL(project.ID),
		projects_testing.Bearer(viewer),
		http.StatusOK,
		&result,
	)

	assert.Equal(t, 2, result.Count)
	assert.Len(t, result.Tasks, 2)
}

func Test_GetTask_WhenCallerIsNotMember_ReturnsForbidden(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	stranger := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Hidden", manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Secret", nil, manager)

	test_utils.MakeGetRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(stranger),
		http.StatusForbidden,
	)
}

func Test_GetTask_WhenTaskDoesNotExist_ReturnsNotFound(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	user := users_testing.CreateTestUser(t, testApp.UserService)

	resp := test_utils.MakeGetRequest(
		t,
		testApp.Router(),
		projects_testing.TaskURL(uuid.New()),
		projects_testing.Bearer(user),
		http.StatusNotFound,
	)
	assert.Equal(t, "task not found", test_utils.ErrorOf(t, resp))
}

func Test_UpdateTask_WhenMemberIsNotAssignee_ReturnsForbidden(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	assignee := users_testing.CreateTestUser(t, testApp.UserService)
	bystander := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Ownership", manager)
	projects_testing.AddMemberToProject(t, router, project.ID, assignee, users_enums.ProjectRoleMember, manager)
	projects_testing.AddMemberToProject(t, router, project.ID, bystander, users_enums.ProjectRoleMember, manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Mine", &assignee.ID, manager)

	done := tasks_enums.TaskStatusDone
	resp := test_utils.MakePutRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(bystander),
		tasks_dto.UpdateTaskRequestDTO{Status: &done},
		http.StatusForbidden,
	)
	assert.Equal(t, "insufficient permissions to update this task", test_utils.ErrorOf(t, resp))
}

func Test_UpdateTask_WhenCallerIsViewerAssignee_ReturnsForbidden(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	viewer := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Viewers", manager)
	projects_testing.AddMemberToProject(t, router, project.ID, viewer, users_enums.ProjectRoleViewer, manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Watched", &viewer.ID, manager)

	done := tasks_enums.TaskStatusDone
	test_utils.MakePutRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(viewer),
		tasks_dto.UpdateTaskRequestDTO{Status: &done},
		http.StatusForbidden,
	)
}

func Test_UpdateTask_WhenAssigneeClearsAssignee_AssigneeKept(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	assignee := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Sticky", manager)
	projects_testing.AddMemberToProject(t, router, project.ID, assignee, users_enums.ProjectRoleMember, manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Stuck", &assignee.ID, manager)

	var updated tasks_models.Task
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(assignee),
		tasks_dto.UpdateTaskRequestDTO{ClearAssignee: true},
		http.StatusOK,
		&updated,
	)

	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, assignee.ID, *updated.AssigneeID)
}

func Test_UpdateTask_WhenCallerIsManager_CanReassignAndUnassign(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	first := users_testing.CreateTestUser(t, testApp.UserService)
	second := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Handover", manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Baton", &first.ID, manager)

	var updated tasks_models.Task
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		tasks_dto.UpdateTaskRequestDTO{AssigneeID: &second.ID},
		http.StatusOK,
		&updated,
	)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, second.ID, *updated.AssigneeID)

	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		tasks_dto.UpdateTaskRequestDTO{ClearAssignee: true},
		http.StatusOK,
		&updated,
	)
	assert.Nil(t, updated.AssigneeID)
}

func Test_UpdateTask_WhenMovedToProjectWithoutManagerRole_ReturnsForbidden(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	otherManager := users_testing.CreateTestUser(t, testApp.UserService)

	source := projects_testing.CreateTestProject(t, router, "Source", manager)
	destination := projects_testing.CreateTestProject(t, router, "Destination", otherManager)
	projects_testing.AddMemberToProject(t, router, destination.ID, manager, users_enums.ProjectRoleMember, otherManager)
	task := projects_testing.CreateTestTask(t, router, source.ID, "Traveller", nil, manager)

	test_utils.MakePutRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		tasks_dto.UpdateTaskRequestDTO{ProjectID: &destination.ID},
		http.StatusForbidden,
	)

	var unchanged tasks_models.Task
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		http.StatusOK,
		&unchanged,
	)
	assert.Equal(t, source.ID, unchanged.ProjectID)
}

func Test_UpdateTask_WhenMovedByManagerOfBothProjects_TaskMoved(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)

	source := projects_testing.CreateTestProject(t, router, "From", manager)
	destination := projects_testing.CreateTestProject(t, router, "To", manager)
	task := projects_testing.CreateTestTask(t, router, source.ID, "Mover", nil, manager)

	var moved tasks_models.Task
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		tasks_dto.UpdateTaskRequestDTO{ProjectID: &destination.ID},
		http.StatusOK,
		&moved,
	)
	assert.Equal(t, destination.ID, moved.ProjectID)
}

func Test_DeleteTask_WhenCallerIsAssignedMember_TaskDeleted(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	assignee := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Cleanup", manager)
	projects_testing.AddMemberToProject(t, router, project.ID, assignee, users_enums.ProjectRoleMember, manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Disposable", &assignee.ID, manager)

	test_utils.MakeDeleteRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(assignee),
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		http.StatusNotFound,
	)
}

func Test_DeleteTask_WhenUnassignedAndCallerIsMember_ReturnsForbidden(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)
	member := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Unowned", manager)
	projects_testing.AddMemberToProject(t, router, project.ID, member, users_enums.ProjectRoleMember, manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Nobody's", nil, manager)

	test_utils.MakeDeleteRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(member),
		http.StatusForbidden,
	)
}

func Test_DeleteProject_WithCascadePolicy_TasksDeleted(t *testing.T) {
	testApp := app_testing.NewTestAppWithEnv(t, func(env *config.EnvVariables) {
		env.TasksOnProjectDelete = config.TaskDeletionPolicyCascade
	})
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Cascade", manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Goes too", nil, manager)

	test_utils.MakeDeleteRequest(
		t,
		router,
		projects_testing.ProjectURL(project.ID),
		projects_testing.Bearer(manager),
		http.StatusOK,
	)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		http.StatusNotFound,
	)
	assert.Equal(t, "task not found", test_utils.ErrorOf(t, resp))
}

func Test_DeleteProject_WithOrphanPolicy_TasksReportMissingProject(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Orphans", manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Left behind", nil, manager)

	test_utils.MakeDeleteRequest(
		t,
		router,
		projects_testing.ProjectURL(project.ID),
		projects_testing.Bearer(manager),
		http.StatusOK,
	)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		http.StatusNotFound,
	)
	assert.Equal(t, "project not found", test_utils.ErrorOf(t, resp))
}

func Test_UpdateTask_WhenManagerClearsDueDate_StoredTaskHasNoDueDate(t *testing.T) {
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Deadlines", manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Someday", nil, manager)

	due := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	test_utils.MakePutRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		tasks_dto.UpdateTaskRequestDTO{DueDate: &due},
		http.StatusOK,
	)

	var stored tasks_models.Task
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, projects_testing.TaskURL(task.ID), projects_testing.Bearer(manager), http.StatusOK, &stored,
	)
	require.NotNil(t, stored.DueDate)
	assert.True(t, due.Equal(*stored.DueDate))

	test_utils.MakePutRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		tasks_dto.UpdateTaskRequestDTO{ClearDueDate: true},
		http.StatusOK,
	)

	test_utils.MakeGetRequestAndUnmarshal(
		t, router, projects_testing.TaskURL(task.ID), projects_testing.Bearer(manager), http.StatusOK, &stored,
	)
	assert.Nil(t, stored.DueDate)
}

type failingDeletionListener struct{}

func (failingDeletionListener) OnBeforeProjectDeletion(context.Context, uuid.UUID) error {
	return errors.New("listener failed")
}

func Test_DeleteProject_WhenDeletionFailsAfterCascade_TasksAndProjectAreKept(t *testing.T) {
	testApp := app_testing.NewTestAppWithEnv(t, func(env *config.EnvVariables) {
		env.TasksOnProjectDelete = config.TaskDeletionPolicyCascade
	})
	// runs after the task cascade, inside the same transaction
	testApp.ProjectService.AddProjectDeletionListener(failingDeletionListener{})

	router := testApp.Router()
	manager := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Survivor", manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Still here", nil, manager)

	test_utils.MakeDeleteRequest(
		t,
		router,
		projects_testing.ProjectURL(project.ID),
		projects_testing.Bearer(manager),
		http.StatusInternalServerError,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		projects_testing.ProjectURL(project.ID),
		projects_testing.Bearer(manager),
		http.StatusOK,
	)

	var stored tasks_models.Task
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, projects_testing.TaskURL(task.ID), projects_testing.Bearer(manager), http.StatusOK, &stored,
	)
	assert.Equal(t, "Still here", stored.Name)
}
