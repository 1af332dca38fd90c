package model

import (
	"time"

	"gorm.io/datatypes"
)

type ApplicationStatus string

const (
	ApplicationInProgress  ApplicationStatus = "In Progress"
	ApplicationUnderReview ApplicationStatus = "Under Review"
	ApplicationCompleted   ApplicationStatus = "Completed"
	ApplicationRejected    ApplicationStatus = "Rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationInProgress, ApplicationUnderReview, ApplicationCompleted, ApplicationRejected:
		return true
	}
	return false
}

// Application 投递记录。Skills/Education/Experience 是投递时刻的资料快照，之后修改个人资料不会影响它
// swagger:model Application
type Application struct {
	UUIDBase
	UserID       string                          `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_user_job" json:"userId"`
	JobID        *string                         `gorm:"type:varchar(36);uniqueIndex:idx_application_user_job" json:"jobId"`
	Position     string                          `gorm:"size:255;not null" json:"position"`
	Status       ApplicationStatus               `gorm:"size:20;not null;index" json:"status"`
	Skills       datatypes.JSONSlice[string]     `gorm:"type:json" json:"skills"`
	Education    datatypes.JSONSlice[Education]  `gorm:"type:json" json:"education"`
	Experience   datatypes.JSONSlice[Experience] `gorm:"type:json" json:"experience"`
	CoverMessage string                          `gorm:"type:text" json:"coverMessage"`
	AppliedAt    time.Time                       `gorm:"not null" json:"appliedAt"`

	User *UserSummary `gorm:"-" json:"user,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}
