package model

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskSubmitted  TaskStatus = "Submitted"
	TaskCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskSubmitted, TaskCompleted:
		return true
	}
	return false
}

// Open 表示测评还可以作答
func (s TaskStatus) Open() bool {
	return s == TaskPending || s == TaskInProgress
}
