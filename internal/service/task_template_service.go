package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"
	"job_assessment_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TemplateStore interface {
	Create(ctx context.Context, tpl *model.TaskTemplate) error
	FindByID(ctx context.Context, id string) (*model.TaskTemplate, error)
	FindByNumber(ctx context.Context, taskNumber string) (*model.TaskTemplate, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.TaskTemplate, error)
	List(ctx context.Context) ([]model.TaskTemplate, error)
	ListNumbers(ctx context.Context) ([]model.TemplateNumber, error)
	Replace(ctx context.Context, tpl *model.TaskTemplate) error
	UpdateResourceURL(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
}

type TemplateUsage interface {
	CountByTemplate(ctx context.Context, templateID string) (int64, error)
}

type ResourceUploader interface {
	Upload(ctx context.Context, prefix, owner, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

const templateResourcePrefix = "task-resources"

type TaskTemplateService struct {
	Templates   TemplateStore
	Assignments TemplateUsage
	Storage     ResourceUploader
}

func NewTaskTemplateService(templates TemplateStore, assignments TemplateUsage, storage ResourceUploader) *TaskTemplateService {
	return &TaskTemplateService{Templates: templates, Assignments: assignments, Storage: storage}
}

type QuestionRequest struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"questionText"`
	QuestionType  string   `json:"questionType"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Points        *int     `json:"points"`
}

type TaskTemplateRequest struct {
	TaskNumber   string            `json:"taskNumber"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Instructions string            `json:"instructions"`
	TimeLimit    *int              `json:"timeLimit"`
	ResourceURL  string            `json:"resourceUrl"`
	Questions    []QuestionRequest `json:"questions"`
}

// BuildTemplate 校验请求并生成模板，错误信息里的题号从 1 开始
func BuildTemplate(req TaskTemplateRequest) (*model.TaskTemplate, error) {
	tpl := &model.TaskTemplate{
		TaskNumber:   strings.TrimSpace(req.TaskNumber),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Instructions: strings.TrimSpace(req.Instructions),
		TimeLimit:    model.DefaultTimeLimit,
		ResourceURL:  strings.TrimSpace(req.ResourceURL),
	}
	if tpl.TaskNumber == "" {
		return nil, util.NewValidationError("Task number is required")
	}
	if tpl.Title == "" {
		return nil, util.NewValidationError("Title is required")
	}
	if req.TimeLimit != nil {
		if *req.TimeLimit < 0 {
			return nil, util.NewValidationError("Time limit cannot be negative")
		}
		tpl.TimeLimit = *req.TimeLimit
	}
	if len(req.Questions) == 0 {
		return nil, util.NewValidationError("At least one question is required")
	}

	for i, qr := range req.Questions {
		q, err := buildQuestion(qr)
		if err != nil {
			return nil, util.NewValidationError(fmt.Sprintf("Question %d: %s", i+1, err.Error()))
		}
		q.Position = i + 1
		tpl.Questions = append(tpl.Questions, *q)
		tpl.TotalPoints += q.Points
	}
	return tpl, nil
}

func buildQuestion(qr QuestionRequest) (*model.TaskQuestion, error) {
	q := &model.TaskQuestion{
		QuestionText: strings.TrimSpace(qr.QuestionText),
		QuestionType: model.QuestionType(strings.TrimSpace(qr.QuestionType)),
		Points:       1,
	}
	q.ID = strings.TrimSpace(qr.ID)
	if q.QuestionText == "" {
		return nil, errors.New("question text is required")
	}
	if qr.Points != nil {
		if *qr.Points < 0 {
			return nil, errors.New("points cannot be negative")
		}
		q.Points = *qr.Points
	}

	switch q.QuestionType {
	case model.QuestionMCQ:
		options := util.CompactStrings(qr.Options)
		if len(options) < 2 {
			return nil, errors.New("multiple choice questions need at least 2 options")
		}
		// 选项和正确答案同样去掉首尾空白，判分时再逐字节比较
		correct := strings.TrimSpace(qr.CorrectAnswer)
		if correct == "" {
			return nil, errors.New("correct answer is required")
		}
		found := false
		for _, o := range options {
			if o == correct {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.New("correct answer must be one of the options")
		}
		q.Options = options
		q.CorrectAnswer = correct
	case model.QuestionText:
		q.Options = nil
		q.CorrectAnswer = ""
	default:
		return nil, fmt.Errorf("unknown question type %q", qr.QuestionType)
	}
	return q, nil
}

func (s *TaskTemplateService) Create(ctx context.Context, adminID string, req TaskTemplateRequest) (*model.TaskTemplate, error) {
	tpl, err := BuildTemplate(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.Templates.FindByNumber(ctx, tpl.TaskNumber); err == nil {
		return nil, util.ErrTaskNumberTaken
	} else if !isNotFound(err) {
		return nil, err
	}

	// 新建时不沿用客户端给出的题目 ID
	for i := range tpl.Questions {
		tpl.Questions[i].ID = ""
	}
	tpl.CreatedBy = adminID
	if err := s.Templates.Create(ctx, tpl); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrTaskNumberTaken
		}
		return nil, fmt.Errorf("create template: %w", err)
	}
	logger.Log.Info("task template created",
		zap.String("templateId", tpl.ID),
		zap.String("taskNumber", tpl.TaskNumber),
		zap.Int("questions", len(tpl.Questions)),
		zap.Int("totalPoints", tpl.TotalPoints))
	return tpl, nil
}

// Update 整体替换题目，ID 属于本模板的题目保留原 ID。已分配的模板不能修改
func (s *TaskTemplateService) Update(ctx context.Context, id string, req TaskTemplateRequest) (*model.TaskTemplate, error) {
	existing, err := s.Templates.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTemplateNotFound)
	}
	if err := s.ensureUnassigned(ctx, id); err != nil {
		return nil, err
	}
	tpl, err := BuildTemplate(req)
	if err != nil {
		return nil, err
	}
	if tpl.TaskNumber != existing.TaskNumber {
		if other, err := s.Templates.FindByNumber(ctx, tpl.TaskNumber); err == nil && other.ID != id {
			return nil, util.ErrTaskNumberTaken
		} else if err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	for i := range tpl.Questions {
		q := &tpl.Questions[i]
		if q.ID != "" && existing.QuestionByID(q.ID) == nil {
			q.ID = ""
		}
		q.TemplateID = id
	}
	tpl.ID = id
	tpl.CreatedAt = existing.CreatedAt
	tpl.CreatedBy = existing.CreatedBy
	if tpl.ResourceURL == "" {
		tpl.ResourceURL = existing.ResourceURL
	}

	if err := s.Templates.Replace(ctx, tpl); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrTaskNumberTaken
		}
		return nil, fmt.Errorf("update template: %w", err)
	}
	return tpl, nil
}

func (s *TaskTemplateService) Get(ctx context.Context, id string) (*model.TaskTemplate, error) {
	tpl, err := s.Templates.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTemplateNotFound)
	}
	return tpl, nil
}

func (s *TaskTemplateService) List(ctx context.Context) ([]model.TaskTemplate, error) {
	return s.Templates.List(ctx)
}

func (s *TaskTemplateService) Numbers(ctx context.Context) ([]model.TemplateNumber, error) {
	return s.Templates.ListNumbers(ctx)
}

// ensureUnassigned 已有分配引用题目时拒绝修改
func (s *TaskTemplateService) ensureUnassigned(ctx context.Context, id string) error {
	used, err := s.Assignments.CountByTemplate(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return util.ErrTemplateInUse
	}
	return nil
}

// Delete 已被分配的模板不能删除
func (s *TaskTemplateService) Delete(ctx context.Context, id string) error {
	if _, err := s.Templates.FindByID(ctx, id); err != nil {
		return notFound(err, util.ErrTemplateNotFound)
	}
	if err := s.ensureUnassigned(ctx, id); err != nil {
		return err
	}
	return s.Templates.Delete(ctx, id)
}

func (s *TaskTemplateService) UploadResource(ctx context.Context, id, filename string, reader io.Reader, size int64, contentType string) (*model.TaskTemplate, error) {
	tpl, err := s.Templates.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTemplateNotFound)
	}
	url, err := s.Storage.Upload(ctx, templateResourcePrefix, tpl.ID, filename, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload resource: %w", err)
	}
	if err := s.Templates.UpdateResourceURL(ctx, id, url); err != nil {
		return nil, err
	}
	tpl.ResourceURL = url
	logger.Log.Info("task template resource uploaded", zap.String("templateId", id), zap.String("url", url))
	return tpl, nil
}
