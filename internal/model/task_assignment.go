package model

import "time"

// swagger:model TaskAssignment
type TaskAssignment struct {
	UUIDBase
	ApplicationID  string     `gorm:"type:varchar(36);not null;index" json:"applicationId"`
	UserID         string     `gorm:"type:varchar(36);not null;index" json:"userId"`
	TaskTemplateID string     `gorm:"type:varchar(36);not null;index" json:"taskTemplateId"`
	TaskNumber     string     `gorm:"size:50;not null" json:"taskNumber"`
	AssignedAt     time.Time  `gorm:"not null" json:"assignedAt"`
	Deadline       int        `gorm:"not null" json:"deadline"` // 小时
	ExpiresAt      time.Time  `gorm:"not null;index" json:"expiresAt"`
	Status         TaskStatus `gorm:"size:20;not null;index" json:"status"`
	StartedAt      *time.Time `json:"startedAt"`
	SubmittedAt    *time.Time `json:"submittedAt"`
}

func (TaskAssignment) TableName() string {
	return "task_assignments"
}
