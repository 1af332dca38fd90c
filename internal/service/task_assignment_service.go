package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"
	"job_assessment_backend/pkg/logger"
	"job_assessment_backend/pkg/monitoring"
	"job_assessment_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type AssignmentStore interface {
	Create(ctx context.Context, a *model.TaskAssignment) error
	FindByID(ctx context.Context, id string) (*model.TaskAssignment, error)
	FindByUser(ctx context.Context, userID string) ([]model.TaskAssignment, error)
	FindByApplication(ctx context.Context, applicationID string) ([]model.TaskAssignment, error)
	List(ctx context.Context) ([]model.TaskAssignment, error)
	CountByTemplate(ctx context.Context, templateID string) (int64, error)
	MarkStarted(ctx context.Context, id string, at time.Time) (bool, error)
	FindExpired(ctx context.Context, before time.Time) ([]model.TaskAssignment, error)
	Delete(ctx context.Context, id string) error
}

type ApplicationFinder interface {
	FindByID(ctx context.Context, id string) (*model.Application, error)
}

// AutoSubmitter 截止后由服务端代为提交
type AutoSubmitter interface {
	AutoSubmit(ctx context.Context, a *model.TaskAssignment) (*model.TaskSubmission, error)
}

type TaskAssignmentService struct {
	Assignments          AssignmentStore
	Applications         ApplicationFinder
	Templates            TemplateStore
	Users                UserStore
	Submitter            AutoSubmitter
	DefaultDeadlineHours int
	Now                  Clock

	grace atomic.Int64
}

func NewTaskAssignmentService(assignments AssignmentStore, apps ApplicationFinder, templates TemplateStore, users UserStore, defaultDeadlineHours int, grace time.Duration) *TaskAssignmentService {
	if defaultDeadlineHours <= 0 {
		defaultDeadlineHours = 24
	}
	s := &TaskAssignmentService{
		Assignments:          assignments,
		Applications:         apps,
		Templates:            templates,
		Users:                users,
		DefaultDeadlineHours: defaultDeadlineHours,
	}
	s.SetGrace(grace)
	return s
}

// SetGrace 配置热更新时调整宽限时间
func (s *TaskAssignmentService) SetGrace(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.grace.Store(int64(d))
}

func (s *TaskAssignmentService) Grace() time.Duration {
	return time.Duration(s.grace.Load())
}

type AssignTaskRequest struct {
	ApplicationID string `json:"applicationId" binding:"required"`
	TaskNumber    string `json:"taskNumber" binding:"required"`
	Deadline      *int   `json:"deadline"`
	UserID        string `json:"userId"`
}

// TemplateView 学生可见的模板，题目不含正确答案
type TemplateView struct {
	ID           string                 `json:"id"`
	TaskNumber   string                 `json:"taskNumber"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Instructions string                 `json:"instructions"`
	TimeLimit    int                    `json:"timeLimit"`
	ResourceURL  string                 `json:"resourceUrl"`
	TotalPoints  int                    `json:"totalPoints"`
	Questions    []model.PublicQuestion `json:"questions"`
}

func NewTemplateView(tpl *model.TaskTemplate) *TemplateView {
	if tpl == nil {
		return nil
	}
	v := &TemplateView{
		ID:           tpl.ID,
		TaskNumber:   tpl.TaskNumber,
		Title:        tpl.Title,
		Description:  tpl.Description,
		Instructions: tpl.Instructions,
		TimeLimit:    tpl.TimeLimit,
		ResourceURL:  tpl.ResourceURL,
		TotalPoints:  tpl.TotalPoints,
		Questions:    make([]model.PublicQuestion, 0, len(tpl.Questions)),
	}
	for _, q := range tpl.Questions {
		v.Questions = append(v.Questions, q.Public())
	}
	return v
}

type AssignmentView struct {
	model.TaskAssignment
	TaskTemplate     *TemplateView      `json:"taskTemplate,omitempty"`
	RemainingSeconds int64              `json:"remainingSeconds"`
	User             *model.UserSummary `json:"user,omitempty"`
	Position         string             `json:"position,omitempty"`
}

// RemainingSeconds 可作答状态下距 expiresAt 的秒数，不会为负
func RemainingSeconds(a *model.TaskAssignment, now time.Time) int64 {
	if !a.Status.Open() {
		return 0
	}
	left := a.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int64(left / time.Second)
}

func (s *TaskAssignmentService) Assign(ctx context.Context, req AssignTaskRequest) (*model.TaskAssignment, error) {
	app, err := s.Applications.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, notFound(err, util.ErrApplicationNotFound)
	}
	if req.UserID != "" && req.UserID != app.UserID {
		return nil, util.ErrUserMismatch
	}

	tpl, err := s.Templates.FindByNumber(ctx, strings.TrimSpace(req.TaskNumber))
	if err != nil {
		return nil, notFound(err, util.ErrTemplateNotFound)
	}

	hours := s.DefaultDeadlineHours
	if req.Deadline != nil {
		if *req.Deadline <= 0 {
			return nil, util.NewValidationError("Deadline must be a positive number of hours")
		}
		hours = *req.Deadline
	}

	now := s.Now.Now()
	a := &model.TaskAssignment{
		ApplicationID:  app.ID,
		UserID:         app.UserID,
		TaskTemplateID: tpl.ID,
		TaskNumber:     tpl.TaskNumber,
		AssignedAt:     now,
		Deadline:       hours,
		ExpiresAt:      now.Add(time.Duration(hours) * time.Hour),
		Status:         model.TaskPending,
	}
	if err := s.Assignments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	logger.Log.Info("task assigned",
		zap.String("assignmentId", a.ID),
		zap.String("applicationId", app.ID),
		zap.String("taskNumber", tpl.TaskNumber),
		zap.Int("deadlineHours", hours))
	return a, nil
}

// Start Pending 切换为 In Progress，其它状态原样返回，expiresAt 不变
func (s *TaskAssignmentService) Start(ctx context.Context, userID, id string) (*model.TaskAssignment, error) {
	a, err := s.Assignments.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrAssignmentNotFound)
	}
	if a.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if a.Status != model.TaskPending {
		return a, nil
	}

	now := s.Now.Now()
	changed, err := s.Assignments.MarkStarted(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("start assignment: %w", err)
	}
	if !changed {
		// 并发请求已经切换过状态
		return s.reload(ctx, id)
	}
	a.Status = model.TaskInProgress
	a.StartedAt = &now
	return a, nil
}

func (s *TaskAssignmentService) reload(ctx context.Context, id string) (*model.TaskAssignment, error) {
	a, err := s.Assignments.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrAssignmentNotFound)
	}
	return a, nil
}

func (s *TaskAssignmentService) templatesFor(ctx context.Context, list []model.TaskAssignment) (map[string]*model.TaskTemplate, error) {
	ids := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, a := range list {
		if !seen[a.TaskTemplateID] {
			seen[a.TaskTemplateID] = true
			ids = append(ids, a.TaskTemplateID)
		}
	}
	return s.Templates.FindByIDs(ctx, ids)
}

// MyAssignments 学生视角，附带不含答案的模板和剩余秒数
func (s *TaskAssignmentService) MyAssignments(ctx context.Context, userID string) ([]AssignmentView, error) {
	list, err := s.Assignments.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	tpls, err := s.templatesFor(ctx, list)
	if err != nil {
		return nil, err
	}
	now := s.Now.Now()
	out := make([]AssignmentView, 0, len(list))
	for i := range list {
		out = append(out, AssignmentView{
			TaskAssignment:   list[i],
			TaskTemplate:     NewTemplateView(tpls[list[i].TaskTemplateID]),
			RemainingSeconds: RemainingSeconds(&list[i], now),
		})
	}
	return out, nil
}

func (s *TaskAssignmentService) adminViews(ctx context.Context, list []model.TaskAssignment) ([]AssignmentView, error) {
	userIDs := make([]string, 0, len(list))
	for _, a := range list {
		userIDs = append(userIDs, a.UserID)
	}
	users, err := s.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	tpls, err := s.templatesFor(ctx, list)
	if err != nil {
		return nil, err
	}

	positions := make(map[string]string)
	now := s.Now.Now()
	out := make([]AssignmentView, 0, len(list))
	for i := range list {
		a := list[i]
		pos, ok := positions[a.ApplicationID]
		if !ok {
			if app, err := s.Applications.FindByID(ctx, a.ApplicationID); err == nil {
				pos = app.Position
			} else if !isNotFound(err) {
				return nil, err
			}
			positions[a.ApplicationID] = pos
		}
		out = append(out, AssignmentView{
			TaskAssignment:   a,
			TaskTemplate:     NewTemplateView(tpls[a.TaskTemplateID]),
			RemainingSeconds: RemainingSeconds(&a, now),
			User:             users[a.UserID].Summary(),
			Position:         pos,
		})
	}
	return out, nil
}

func (s *TaskAssignmentService) ListAll(ctx context.Context) ([]AssignmentView, error) {
	list, err := s.Assignments.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.adminViews(ctx, list)
}

func (s *TaskAssignmentService) ByApplication(ctx context.Context, applicationID string) ([]AssignmentView, error) {
	list, err := s.Assignments.FindByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return s.adminViews(ctx, list)
}

func (s *TaskAssignmentService) Get(ctx context.Context, viewerID string, isAdmin bool, id string) (*AssignmentView, error) {
	a, err := s.Assignments.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrAssignmentNotFound)
	}
	if !isAdmin && a.UserID != viewerID {
		return nil, util.ErrPermissionDenied
	}
	tpl, err := s.Templates.FindByID(ctx, a.TaskTemplateID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	return &AssignmentView{
		TaskAssignment:   *a,
		TaskTemplate:     NewTemplateView(tpl),
		RemainingSeconds: RemainingSeconds(a, s.Now.Now()),
	}, nil
}

func (s *TaskAssignmentService) Delete(ctx context.Context, id string) error {
	return notFound(s.Assignments.Delete(ctx, id), util.ErrAssignmentNotFound)
}

// SweepExpired 把超过 expiresAt+宽限时间仍未提交的分配按空答卷自动提交，返回处理条数
func (s *TaskAssignmentService) SweepExpired(ctx context.Context) (n int, err error) {
	ctx, span := tracing.StartSpan(ctx, "assignments.sweep")
	defer func() {
		span.SetAttributes(attribute.Int("expired", n))
		tracing.EndSpan(span, err)
	}()

	if s.Submitter == nil {
		return 0, errors.New("auto submitter not configured")
	}
	cutoff := s.Now.Now().Add(-s.Grace())
	list, err := s.Assignments.FindExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("find expired assignments: %w", err)
	}

	for i := range list {
		a := &list[i]
		if _, err := s.Submitter.AutoSubmit(ctx, a); err != nil {
			if errors.Is(err, util.ErrSubmissionExists) {
				continue
			}
			logger.Log.Error("auto submit failed", zap.String("assignmentId", a.ID), zap.Error(err))
			continue
		}
		n++
		logger.Log.Info("assignment auto-submitted",
			zap.String("assignmentId", a.ID),
			zap.String("userId", a.UserID),
			zap.Time("expiresAt", a.ExpiresAt))
	}
	monitoring.RecordExpired(n)
	return n, nil
}
