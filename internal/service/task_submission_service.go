package service

import (
	"context"
	"errors"
	"fmt"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/repository"
	"job_assessment_backend/internal/util"
	"job_assessment_backend/pkg/logger"
	"job_assessment_backend/pkg/monitoring"
	"job_assessment_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionStore interface {
	CreateForAssignment(ctx context.Context, sub *model.TaskSubmission) error
	FindByID(ctx context.Context, id string) (*model.TaskSubmission, error)
	FindByAssignment(ctx context.Context, assignmentID string) (*model.TaskSubmission, error)
	FindByUser(ctx context.Context, userID string) ([]model.TaskSubmission, error)
	SaveReview(ctx context.Context, sub *model.TaskSubmission) error
}

type AssignmentFinder interface {
	FindByID(ctx context.Context, id string) (*model.TaskAssignment, error)
}

type TaskSubmissionService struct {
	Submissions SubmissionStore
	Assignments AssignmentFinder
	Templates   TemplateStore
	Users       UserStore
	Now         Clock
}

func NewTaskSubmissionService(subs SubmissionStore, assignments AssignmentFinder, templates TemplateStore, users UserStore) *TaskSubmissionService {
	return &TaskSubmissionService{Submissions: subs, Assignments: assignments, Templates: templates, Users: users}
}

type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

type SubmitTaskRequest struct {
	TaskAssignmentID string          `json:"taskAssignmentId" binding:"required"`
	Answers          []AnswerRequest `json:"answers"`
}

type GradeRequest struct {
	QuestionID   string `json:"questionId" binding:"required"`
	PointsEarned int    `json:"pointsEarned"`
}

type FeedbackRequest struct {
	Feedback string         `json:"feedback"`
	Grades   []GradeRequest `json:"grades"`
}

// AnswerView 答案附带题目信息，CorrectAnswer 只对管理员填充
type AnswerView struct {
	model.TaskAnswer
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options,omitempty"`
	MaxPoints     int      `json:"maxPoints"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

type SubmissionView struct {
	model.TaskSubmission
	Answers       []AnswerView       `json:"answers"`
	TemplateTitle string             `json:"templateTitle,omitempty"`
	TaskNumber    string             `json:"taskNumber,omitempty"`
	User          *model.UserSummary `json:"user,omitempty"`
}

// ScoreAnswers 为模板的每道题生成一条答案记录。选择题与正确答案逐字节比较，
// 文本题记 0 分并标记为待人工评分。返回得分合计与满分
func ScoreAnswers(tpl *model.TaskTemplate, answers []AnswerRequest) ([]model.TaskAnswer, int, int, error) {
	given := make(map[string]string, len(answers))
	for _, a := range answers {
		if tpl.QuestionByID(a.QuestionID) == nil {
			return nil, 0, 0, util.NewValidationError("Unknown question: " + a.QuestionID)
		}
		if _, dup := given[a.QuestionID]; dup {
			return nil, 0, 0, util.NewValidationError("Duplicate answer for question: " + a.QuestionID)
		}
		given[a.QuestionID] = a.Answer
	}

	out := make([]model.TaskAnswer, 0, len(tpl.Questions))
	total, maxPoints := 0, 0
	for _, q := range tpl.Questions {
		maxPoints += q.Points
		ans := model.TaskAnswer{
			QuestionID:   q.ID,
			QuestionType: q.QuestionType,
			Answer:       given[q.ID],
		}
		switch q.QuestionType {
		case model.QuestionMCQ:
			correct := ans.Answer == q.CorrectAnswer
			ans.IsCorrect = util.BoolPtr(correct)
			if correct {
				ans.PointsEarned = q.Points
			}
			ans.GradingStatus = model.GradingAuto
		default:
			ans.GradingStatus = model.GradingUngraded
		}
		total += ans.PointsEarned
		out = append(out, ans)
	}
	return out, total, maxPoints, nil
}

func (s *TaskSubmissionService) Submit(ctx context.Context, userID string, req SubmitTaskRequest) (*model.TaskSubmission, error) {
	a, err := s.Assignments.FindByID(ctx, req.TaskAssignmentID)
	if err != nil {
		return nil, notFound(err, util.ErrAssignmentNotFound)
	}
	if a.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return s.submit(ctx, a, req.Answers, false)
}

// AutoSubmit 截止扫描调用，按空答卷提交
func (s *TaskSubmissionService) AutoSubmit(ctx context.Context, a *model.TaskAssignment) (*model.TaskSubmission, error) {
	return s.submit(ctx, a, nil, true)
}

func (s *TaskSubmissionService) submit(ctx context.Context, a *model.TaskAssignment, answers []AnswerRequest, auto bool) (sub *model.TaskSubmission, err error) {
	ctx, span := tracing.StartSpan(ctx, "submissions.submit",
		attribute.String("assignment.id", a.ID),
		attribute.Bool("auto", auto))
	defer func() { tracing.EndSpan(span, err) }()

	if !a.Status.Open() {
		return nil, util.ErrSubmissionExists
	}
	if _, err := s.Submissions.FindByAssignment(ctx, a.ID); err == nil {
		return nil, util.ErrSubmissionExists
	} else if !isNotFound(err) {
		return nil, err
	}

	tpl, err := s.Templates.FindByID(ctx, a.TaskTemplateID)
	if err != nil {
		return nil, notFound(err, util.ErrTemplateNotFound)
	}
	scored, total, maxPoints, err := ScoreAnswers(tpl, answers)
	if err != nil {
		return nil, err
	}

	now := s.Now.Now()
	sub = &model.TaskSubmission{
		TaskAssignmentID: a.ID,
		UserID:           a.UserID,
		TaskTemplateID:   tpl.ID,
		Answers:          scored,
		TotalPoints:      total,
		MaxPoints:        maxPoints,
		SubmittedAt:      now,
		IsLate:           now.After(a.ExpiresAt),
		AutoSubmitted:    auto,
	}
	if err := s.Submissions.CreateForAssignment(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrAssignmentClosed) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrSubmissionExists
		}
		return nil, fmt.Errorf("create submission: %w", err)
	}

	monitoring.RecordSubmission(auto)
	logger.Log.Info("submission scored",
		zap.String("submissionId", sub.ID),
		zap.String("assignmentId", a.ID),
		zap.Int("totalPoints", total),
		zap.Int("maxPoints", maxPoints),
		zap.Bool("late", sub.IsLate),
		zap.Bool("auto", auto))
	return sub, nil
}

func (s *TaskSubmissionService) view(sub *model.TaskSubmission, tpl *model.TaskTemplate, withKey bool) SubmissionView {
	v := SubmissionView{TaskSubmission: *sub, Answers: make([]AnswerView, 0, len(sub.Answers))}
	if tpl != nil {
		v.TemplateTitle = tpl.Title
		v.TaskNumber = tpl.TaskNumber
	}
	for _, a := range sub.Answers {
		av := AnswerView{TaskAnswer: a}
		if tpl != nil {
			if q := tpl.QuestionByID(a.QuestionID); q != nil {
				av.QuestionText = q.QuestionText
				av.Options = q.Options
				av.MaxPoints = q.Points
				if withKey {
					av.CorrectAnswer = q.CorrectAnswer
				}
			}
		}
		v.Answers = append(v.Answers, av)
	}
	return v
}

func (s *TaskSubmissionService) views(ctx context.Context, subs []model.TaskSubmission, withKey bool) ([]SubmissionView, error) {
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.TaskTemplateID)
	}
	tpls, err := s.Templates.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]SubmissionView, 0, len(subs))
	for i := range subs {
		out = append(out, s.view(&subs[i], tpls[subs[i].TaskTemplateID], withKey))
	}
	return out, nil
}

func (s *TaskSubmissionService) MySubmissions(ctx context.Context, userID string) ([]SubmissionView, error) {
	subs, err := s.Submissions.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, subs, false)
}

// ByUser 管理员查看某个学生的全部提交
func (s *TaskSubmissionService) ByUser(ctx context.Context, userID string) ([]SubmissionView, error) {
	subs, err := s.Submissions.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, err := s.views(ctx, subs, true)
	if err != nil {
		return nil, err
	}
	if user, err := s.Users.FindByID(ctx, userID); err == nil {
		for i := range out {
			out[i].User = user.Summary()
		}
	} else if !isNotFound(err) {
		return nil, err
	}
	return out, nil
}

func (s *TaskSubmissionService) Get(ctx context.Context, viewerID string, isAdmin bool, id string) (*SubmissionView, error) {
	sub, err := s.Submissions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrSubmissionNotFound)
	}
	if !isAdmin && sub.UserID != viewerID {
		return nil, util.ErrPermissionDenied
	}
	tpl, err := s.Templates.FindByID(ctx, sub.TaskTemplateID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	v := s.view(sub, tpl, isAdmin)
	return &v, nil
}

// Review 写入反馈和文本题人工评分，分配随之进入 Completed
func (s *TaskSubmissionService) Review(ctx context.Context, adminID, id string, req FeedbackRequest) (*model.TaskSubmission, error) {
	sub, err := s.Submissions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrSubmissionNotFound)
	}
	tpl, err := s.Templates.FindByID(ctx, sub.TaskTemplateID)
	if err != nil {
		return nil, notFound(err, util.ErrTemplateNotFound)
	}

	for _, g := range req.Grades {
		idx := -1
		for i := range sub.Answers {
			if sub.Answers[i].QuestionID == g.QuestionID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, util.NewValidationError("Unknown question: " + g.QuestionID)
		}
		ans := &sub.Answers[idx]
		if ans.QuestionType != model.QuestionText {
			return nil, util.NewValidationError("Only text answers can be graded manually")
		}
		limit := 0
		if q := tpl.QuestionByID(g.QuestionID); q != nil {
			limit = q.Points
		}
		if g.PointsEarned < 0 || g.PointsEarned > limit {
			return nil, util.NewValidationError(fmt.Sprintf("Points for question %s must be between 0 and %d", g.QuestionID, limit))
		}
		ans.PointsEarned = g.PointsEarned
		ans.GradingStatus = model.GradingManual
	}

	now := s.Now.Now()
	sub.Recalculate()
	sub.Feedback = req.Feedback
	sub.ReviewedAt = &now
	sub.ReviewedBy = adminID
	if err := s.Submissions.SaveReview(ctx, sub); err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}
	logger.Log.Info("submission reviewed",
		zap.String("submissionId", sub.ID),
		zap.String("reviewedBy", adminID),
		zap.Int("totalPoints", sub.TotalPoints))
	return sub, nil
}
