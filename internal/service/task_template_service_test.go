package service

import (
	"context"
	"errors"
	"testing"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func mcq(text string, options []string, correct string, points *int) QuestionRequest {
	return QuestionRequest{QuestionText: text, QuestionType: "mcq", Options: options, CorrectAnswer: correct, Points: points}
}

func textQ(text string, points *int) QuestionRequest {
	return QuestionRequest{QuestionText: text, QuestionType: "text", Points: points}
}

func validTemplateRequest() TaskTemplateRequest {
	return TaskTemplateRequest{
		TaskNumber: "T-1",
		Title:      "Go basics",
		Questions: []QuestionRequest{
			mcq("Which keyword starts a goroutine?", []string{"A", "B", "C"}, "B", intPtr(5)),
			textQ("Explain channels", intPtr(10)),
		},
	}
}

func TestBuildTemplate_TotalPointsAndDefaults(t *testing.T) {
	req := validTemplateRequest()
	req.Questions = append(req.Questions, textQ("No points given", nil))

	tpl, err := BuildTemplate(req)
	require.NoError(t, err)

	assert.Equal(t, 16, tpl.TotalPoints)
	assert.Equal(t, model.DefaultTimeLimit, tpl.TimeLimit)
	require.Len(t, tpl.Questions, 3)
	assert.Equal(t, 1, tpl.Questions[2].Points)
	assert.Equal(t, 3, tpl.Questions[2].Position)
	assert.Empty(t, tpl.Questions[1].CorrectAnswer)
}

func TestBuildTemplate_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TaskTemplateRequest)
		msg    string
	}{
		{"missing task number", func(r *TaskTemplateRequest) { r.TaskNumber = " " }, "Task number is required"},
		{"missing title", func(r *TaskTemplateRequest) { r.Title = "" }, "Title is required"},
		{"no questions", func(r *TaskTemplateRequest) { r.Questions = nil }, "At least one question is required"},
		{"negative time limit", func(r *TaskTemplateRequest) { r.TimeLimit = intPtr(-1) }, "Time limit cannot be negative"},
		{"single option", func(r *TaskTemplateRequest) {
			r.Questions[1] = mcq("Pick", []string{"only", " "}, "only", nil)
		}, "Question 2: multiple choice questions need at least 2 options"},
		{"answer not in options", func(r *TaskTemplateRequest) {
			r.Questions[0].CorrectAnswer = "D"
		}, "Question 1: correct answer must be one of the options"},
		{"blank answer", func(r *TaskTemplateRequest) {
			r.Questions[0].CorrectAnswer = "  "
		}, "Question 1: correct answer is required"},
		{"unknown type", func(r *TaskTemplateRequest) {
			r.Questions[1].QuestionType = "essay"
		}, `Question 2: unknown question type "essay"`},
		{"negative points", func(r *TaskTemplateRequest) {
			r.Questions[1].Points = intPtr(-3)
		}, "Question 2: points cannot be negative"},
		{"empty text", func(r *TaskTemplateRequest) {
			r.Questions[0].QuestionText = ""
		}, "Question 1: question text is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validTemplateRequest()
			tc.mutate(&req)
			_, err := BuildTemplate(req)

			var appErr *util.AppError
			require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
			assert.Equal(t, util.KindValidation, appErr.Kind)
			assert.Equal(t, tc.msg, appErr.Message)
		})
	}
}

func TestTaskTemplateService_CreateRejectsDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskTemplateService(newMemTemplates(), newMemAssignments(), nil)

	first, err := svc.Create(ctx, "admin-1", validTemplateRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "admin-1", first.CreatedBy)

	_, err = svc.Create(ctx, "admin-1", validTemplateRequest())
	assert.ErrorIs(t, err, util.ErrTaskNumberTaken)
}

func TestTaskTemplateService_UpdateKeepsOwnQuestionIDs(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskTemplateService(newMemTemplates(), newMemAssignments(), nil)

	tpl, err := svc.Create(ctx, "admin-1", validTemplateRequest())
	require.NoError(t, err)
	keptID := tpl.Questions[0].ID

	req := validTemplateRequest()
	req.Title = "Go basics v2"
	req.Questions[0].ID = keptID
	req.Questions[1].ID = "not-from-this-template"

	updated, err := svc.Update(ctx, tpl.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Go basics v2", updated.Title)
	assert.Equal(t, keptID, updated.Questions[0].ID)
	assert.NotEqual(t, "not-from-this-template", updated.Questions[1].ID)
	assert.Equal(t, "admin-1", updated.CreatedBy)
}

func TestTaskTemplateService_DeleteInUse(t *testing.T) {
	ctx := context.Background()
	templates := newMemTemplates()
	assignments := newMemAssignments()
	svc := NewTaskTemplateService(templates, assignments, nil)

	tpl, err := svc.Create(ctx, "admin-1", validTemplateRequest())
	require.NoError(t, err)
	require.NoError(t, assignments.Create(ctx, &model.TaskAssignment{TaskTemplateID: tpl.ID, Status: model.TaskPending}))

	assert.ErrorIs(t, svc.Delete(ctx, tpl.ID), util.ErrTemplateInUse)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), util.ErrTemplateNotFound)
}

func TestBuildTemplate_TrimsCorrectAnswerLikeOptions(t *testing.T) {
	req := validTemplateRequest()
	req.Questions[0] = mcq("Pick", []string{" A", " B ", "C"}, " B", nil)

	tpl, err := BuildTemplate(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, []string(tpl.Questions[0].Options))
	assert.Equal(t, "B", tpl.Questions[0].CorrectAnswer)
}

func TestTaskTemplateService_UpdateAssignedTemplate(t *testing.T) {
	ctx := context.Background()
	f := newAssessmentFixture(t)
	svc := NewTaskTemplateService(f.templates, f.assignments, nil)
	a := f.assign(t, 24)
	mcqID, textID := f.tpl.Questions[0].ID, f.tpl.Questions[1].ID

	sub, err := f.submitSvc.Submit(ctx, f.student.ID, SubmitTaskRequest{
		TaskAssignmentID: a.ID,
		Answers:          []AnswerRequest{{QuestionID: mcqID, Answer: "B"}, {QuestionID: textID, Answer: "..."}},
	})
	require.NoError(t, err)

	req := validTemplateRequest()
	req.Title = "Go basics v2"
	_, err = svc.Update(ctx, f.tpl.ID, req)
	assert.ErrorIs(t, err, util.ErrTemplateInUse)

	// 题目保持不变，文本题仍可按原分值评分
	stored, err := f.templates.FindByID(ctx, f.tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tpl.Title, stored.Title)
	assert.Equal(t, textID, stored.Questions[1].ID)

	reviewed, err := f.submitSvc.Review(ctx, "admin-1", sub.ID, FeedbackRequest{
		Grades: []GradeRequest{{QuestionID: textID, PointsEarned: 7}},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, reviewed.TotalPoints)

	second := f.assign(t, 24)
	_, err = f.submitSvc.Submit(ctx, f.student.ID, SubmitTaskRequest{
		TaskAssignmentID: second.ID,
		Answers:          []AnswerRequest{{QuestionID: mcqID, Answer: "A"}},
	})
	assert.NoError(t, err)
}
