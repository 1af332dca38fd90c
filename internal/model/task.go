package model

import "time"

// Task 早期版本的自由格式任务，不关联模板
// swagger:model Task
type Task struct {
	UUIDBase
	ApplicationID string     `gorm:"type:varchar(36);not null;index" json:"applicationId"`
	UserID        string     `gorm:"type:varchar(36);not null;index" json:"userId"`
	TaskNumber    string     `gorm:"size:50;not null" json:"taskNumber"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Instructions  string     `gorm:"type:text" json:"instructions"`
	ResourceURL   string     `gorm:"size:500" json:"resourceUrl"`
	Deadline      int        `gorm:"not null" json:"deadline"`
	Status        TaskStatus `gorm:"size:20;not null" json:"status"`
	AssignedAt    time.Time  `json:"assignedAt"`
	SubmittedAt   *time.Time `json:"submittedAt"`
}

func (Task) TableName() string {
	return "tasks"
}
