package tasks_repositories_test

import (
	"context"
	"net/http"
	"testing"

	app_testing "taskboard/internal/app/testing"
	projects_testing "taskboard/internal/features/projects/testing"
	tasks_dto "taskboard/internal/features/tasks/dto"
	tasks_enums "taskboard/internal/features/tasks/enums"
	tasks_models "taskboard/internal/features/tasks/models"
	tasks_repositories "taskboard/internal/features/tasks/repositories"
	users_enums "taskboard/internal/features/users/enums"
	users_testing "taskboard/internal/features/users/testing"
	test_utils "taskboard/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_UpdateTask_WithStaleRow_LeavesUnselectedColumnsAlone(t *testing.T) {
	ctx := context.Background()
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	repository := tasks_repositories.NewTaskRepository(test_utils.StartTestDatabase(t))

	manager := users_testing.CreateTestUser(t, testApp.UserService)
	assignee := users_testing.CreateTestUser(t, testApp.UserService)
	replacement := users_testing.CreateTestUser(t, testApp.UserService)

	project := projects_testing.CreateTestProject(t, router, "Races", manager)
	projects_testing.AddMemberToProject(t, router, project.ID, assignee, users_enums.ProjectRoleMember, manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Contended", &assignee.ID, manager)

	// the assignee's request loaded the row before the manager reassigned it
	stale, err := repository.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, stale)

	test_utils.MakePutRequest(
		t,
		router,
		projects_testing.TaskURL(task.ID),
		projects_testing.Bearer(manager),
		tasks_dto.UpdateTaskRequestDTO{AssigneeID: &replacement.ID},
		http.StatusOK,
	)

	stale.Status = tasks_enums.TaskStatusInProgress
	require.NoError(t, repository.UpdateTask(ctx, stale, []string{"status"}))

	stored, err := repository.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, tasks_enums.TaskStatusInProgress, stored.Status)
	require.NotNil(t, stored.AssigneeID)
	assert.Equal(t, replacement.ID, *stored.AssigneeID)
	assert.Equal(t, project.ID, stored.ProjectID)
}

func Test_UpdateTask_WithSelectedNilAssignee_ClearsColumn(t *testing.T) {
	ctx := context.Background()
	testApp := app_testing.NewTestApp(t)
	router := testApp.Router()
	repository := tasks_repositories.NewTaskRepository(test_utils.StartTestDatabase(t))

	manager := users_testing.CreateTestUser(t, testApp.UserService)
	project := projects_testing.CreateTestProject(t, router, "Unassign", manager)
	task := projects_testing.CreateTestTask(t, router, project.ID, "Free", &manager.ID, manager)

	update := &tasks_models.Task{ID: task.ID}
	require.NoError(t, repository.UpdateTask(ctx, update, []string{"assignee_id"}))

	stored, err := repository.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.AssigneeID)
	assert.Equal(t, "Free", stored.Name)
}
