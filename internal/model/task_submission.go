package model

import "time"

type GradingStatus string

const (
	GradingAuto     GradingStatus = "auto"
	GradingUngraded GradingStatus = "ungraded"
	GradingManual   GradingStatus = "manual"
)

// TaskSubmission 每个测评分配最多一份提交，由 task_assignment_id 唯一索引保证
// swagger:model TaskSubmission
type TaskSubmission struct {
	UUIDBase
	TaskAssignmentID string       `gorm:"type:varchar(36);not null;uniqueIndex" json:"taskAssignmentId"`
	UserID           string       `gorm:"type:varchar(36);not null;index" json:"userId"`
	TaskTemplateID   string       `gorm:"type:varchar(36);not null;index" json:"taskTemplateId"`
	Answers          []TaskAnswer `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"answers"`
	TotalPoints      int          `gorm:"not null" json:"totalPoints"`
	MaxPoints        int          `gorm:"not null" json:"maxPoints"`
	SubmittedAt      time.Time    `gorm:"not null" json:"submittedAt"`
	IsLate           bool         `json:"isLate"`
	AutoSubmitted    bool         `json:"autoSubmitted"`
	Feedback         string       `gorm:"type:text" json:"feedback"`
	ReviewedAt       *time.Time   `json:"reviewedAt"`
	ReviewedBy       string       `gorm:"type:varchar(36)" json:"reviewedBy"`
}

func (TaskSubmission) TableName() string {
	return "task_submissions"
}

// Recalculate 重新累计得分
func (s *TaskSubmission) Recalculate() {
	total := 0
	for _, a := range s.Answers {
		total += a.PointsEarned
	}
	s.TotalPoints = total
}

type TaskAnswer struct {
	UUIDBase
	SubmissionID  string        `gorm:"type:varchar(36);not null;index" json:"submissionId"`
	QuestionID    string        `gorm:"type:varchar(36);not null" json:"questionId"`
	QuestionType  QuestionType  `gorm:"size:10;not null" json:"questionType"`
	Answer        string        `gorm:"type:text" json:"answer"`
	IsCorrect     *bool         `json:"isCorrect"`
	PointsEarned  int           `gorm:"not null" json:"pointsEarned"`
	GradingStatus GradingStatus `gorm:"size:10;not null" json:"gradingStatus"`
}

func (TaskAnswer) TableName() string {
	return "task_answers"
}
