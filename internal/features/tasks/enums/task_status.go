package tasks_enums

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "Todo"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusInReview   TaskStatus = "InReview"
	TaskStatusDone       TaskStatus = "Done"
	TaskStatusBlocked    TaskStatus = "Blocked"
)

// IsValid validates the TaskStatus. Any valid status may follow any other.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone, TaskStatusBlocked:
		return true
	default:
		return false
	}
}
