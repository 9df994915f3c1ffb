package projects_testing

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	projects_dto "taskboard/internal/features/projects/dto"
	tasks_dto "taskboard/internal/features/tasks/dto"
	tasks_models "taskboard/internal/features/tasks/models"
	users_enums "taskboard/internal/features/users/enums"
	users_testing "taskboard/internal/features/users/testing"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func Bearer(user *users_testing.TestUser) string {
	return "Bearer " + user.Token
}

func CreateTestProject(
	t *testing.T,
	router *gin.Engine,
	name string,
	manager *users_testing.TestUser,
) *projects_dto.ProjectResponseDTO {
	t.Helper()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	request := projects_dto.CreateProjectRequestDTO{
		Name:      name,
		StartDate: start,
		EndDate:   start.AddDate(0, 3, 0),
	}

	var project projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		Bearer(manager),
		request,
		http.StatusCreated,
		&project,
	)

	return &project
}

func AddMemberToProject(
	t *testing.T,
	router *gin.Engine,
	projectID uuid.UUID,
	member *users_testing.TestUser,
	role users_enums.ProjectRole,
	manager *users_testing.TestUser,
) {
	t.Helper()

	test_utils.MakePostRequest(
		t,
		router,
		MembersURL(projectID),
		Bearer(manager),
		projects_dto.AddMemberRequestDTO{UserID: member.ID, Role: role},
		http.StatusCreated,
	)
}

func GetProjectMembers(
	t *testing.T,
	router *gin.Engine,
	projectID uuid.UUID,
	requester *users_testing.TestUser,
) *projects_dto.GetMembersResponseDTO {
	t.Helper()

	var members projects_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		MembersURL(projectID),
		Bearer(requester),
		http.StatusOK,
		&members,
	)

	return &members
}

func CreateTestTask(
	t *testing.T,
	router *gin.Engine,
	projectID uuid.UUID,
	name string,
	assigneeID *uuid.UUID,
	creator *users_testing.TestUser,
) *tasks_models.Task {
	t.Helper()

	var task tasks_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		TasksURL(projectID),
		Bearer(creator),
		tasks_dto.CreateTaskRequestDTO{Name: name, AssigneeID: assigneeID},
		http.StatusCreated,
		&task,
	)

	return &task
}

func ProjectURL(projectID uuid.UUID) string {
	return "/api/v1/projects/" + projectID.String()
}

func MembersURL(projectID uuid.UUID) string {
	return ProjectURL(projectID) + "/members"
}

func MemberURL(projectID uuid.UUID, userID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", MembersURL(projectID), userID)
}

func TasksURL(projectID uuid.UUID) string {
	return ProjectURL(projectID) + "/tasks"
}

func TaskURL(taskID uuid.UUID) string {
	return "/api/v1/tasks/" + taskID.String()
}
