package model

import "gorm.io/datatypes"

type QuestionType string

const (
	QuestionMCQ  QuestionType = "mcq"
	QuestionText QuestionType = "text"
)

const DefaultTimeLimit = 60

// swagger:model TaskTemplate
type TaskTemplate struct {
	UUIDBase
	TaskNumber   string         `gorm:"size:50;not null;uniqueIndex" json:"taskNumber"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Instructions string         `gorm:"type:text" json:"instructions"`
	TimeLimit    int            `gorm:"not null" json:"timeLimit"` // 分钟
	ResourceURL  string         `gorm:"size:500" json:"resourceUrl"`
	TotalPoints  int            `gorm:"not null" json:"totalPoints"`
	CreatedBy    string         `gorm:"type:varchar(36);index" json:"createdBy"`
	Questions    []TaskQuestion `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (TaskTemplate) TableName() string {
	return "task_templates"
}

// QuestionByID 按题目 ID 查找，找不到返回 nil
func (t *TaskTemplate) QuestionByID(id string) *TaskQuestion {
	for i := range t.Questions {
		if t.Questions[i].ID == id {
			return &t.Questions[i]
		}
	}
	return nil
}

type TaskQuestion struct {
	UUIDBase
	TemplateID    string                      `gorm:"type:varchar(36);not null;index" json:"templateId"`
	Position      int                         `gorm:"not null" json:"position"`
	QuestionText  string                      `gorm:"type:text;not null" json:"questionText"`
	QuestionType  QuestionType                `gorm:"size:10;not null" json:"questionType"`
	Options       datatypes.JSONSlice[string] `gorm:"type:json" json:"options"`
	CorrectAnswer string                      `gorm:"type:text" json:"correctAnswer"`
	Points        int                         `gorm:"not null" json:"points"`
}

func (TaskQuestion) TableName() string {
	return "task_questions"
}

// PublicQuestion 学生作答时看到的题目，不含正确答案
type PublicQuestion struct {
	ID           string       `json:"id"`
	QuestionText string       `json:"questionText"`
	QuestionType QuestionType `json:"questionType"`
	Options      []string     `json:"options"`
	Points       int          `json:"points"`
}

func (q TaskQuestion) Public() PublicQuestion {
	return PublicQuestion{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		QuestionType: q.QuestionType,
		Options:      append([]string(nil), q.Options...),
		Points:       q.Points,
	}
}

// TemplateNumber 模板编号下拉列表项
type TemplateNumber struct {
	ID         string `json:"id"`
	TaskNumber string `json:"taskNumber"`
	Title      string `json:"title"`
}
