package service

import (
	"context"
	"testing"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskAssignmentService_AssignComputesExpiry(t *testing.T) {
	f := newAssessmentFixture(t)

	a := f.assign(t, 24)
	assert.Equal(t, model.TaskPending, a.Status)
	assert.Equal(t, t0, a.AssignedAt)
	assert.Equal(t, t0.Add(24*time.Hour), a.ExpiresAt)
	assert.Equal(t, f.student.ID, a.UserID)
	assert.Equal(t, f.tpl.ID, a.TaskTemplateID)
	assert.Equal(t, f.tpl.TaskNumber, a.TaskNumber)
}

func TestTaskAssignmentService_AssignValidation(t *testing.T) {
	ctx := context.Background()
	f := newAssessmentFixture(t)

	a, err := f.assignSvc.Assign(ctx, AssignTaskRequest{ApplicationID: f.app.ID, TaskNumber: f.tpl.TaskNumber})
	require.NoError(t, err)
	assert.Equal(t, 24, a.Deadline, "default deadline")

	zero := 0
	_, err = f.assignSvc.Assign(ctx, AssignTaskRequest{ApplicationID: f.app.ID, TaskNumber: f.tpl.TaskNumber, Deadline: &zero})
	assert.Error(t, err)

	_, err = f.assignSvc.Assign(ctx, AssignTaskRequest{ApplicationID: f.app.ID, TaskNumber: "T-404"})
	assert.ErrorIs(t, err, util.ErrTemplateNotFound)

	_, err = f.assignSvc.Assign(ctx, AssignTaskRequest{ApplicationID: "missing", TaskNumber: f.tpl.TaskNumber})
	assert.ErrorIs(t, err, util.ErrApplicationNotFound)

	_, err = f.assignSvc.Assign(ctx, AssignTaskRequest{ApplicationID: f.app.ID, TaskNumber: f.tpl.TaskNumber, UserID: "other"})
	assert.ErrorIs(t, err, util.ErrUserMismatch)
}

func TestTaskAssignmentService_StartIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newAssessmentFixture(t)
	a := f.assign(t, 24)

	f.assignSvc.Now = fixedClock(t0.Add(10 * time.Minute))
	started, err := f.assignSvc.Start(ctx, f.student.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, started.Status)
	require.NotNil(t, started.StartedAt)
	firstStart := *started.StartedAt

	f.assignSvc.Now = fixedClock(t0.Add(20 * time.Minute))
	again, err := f.assignSvc.Start(ctx, f.student.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, again.Status)
	assert.Equal(t, firstStart, *again.StartedAt)
	assert.Equal(t, a.ExpiresAt, again.ExpiresAt)

	_, err = f.assignSvc.Start(ctx, "someone-else", a.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestRemainingSeconds(t *testing.T) {
	a := &model.TaskAssignment{Status: model.TaskInProgress, ExpiresAt: t0.Add(90 * time.Second)}
	assert.Equal(t, int64(90), RemainingSeconds(a, t0))
	assert.Equal(t, int64(0), RemainingSeconds(a, t0.Add(time.Hour)))

	a.Status = model.TaskSubmitted
	assert.Equal(t, int64(0), RemainingSeconds(a, t0))
}

func TestTaskAssignmentService_MyAssignmentsHidesAnswers(t *testing.T) {
	ctx := context.Background()
	f := newAssessmentFixture(t)
	f.assign(t, 2)

	list, err := f.assignSvc.MyAssignments(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].TaskTemplate)
	assert.Len(t, list[0].TaskTemplate.Questions, 2)
	assert.Equal(t, int64(2*3600), list[0].RemainingSeconds)
}

func TestTaskAssignmentService_AdminViewsCarryIdentity(t *testing.T) {
	ctx := context.Background()
	f := newAssessmentFixture(t)
	f.assign(t, 2)

	list, err := f.assignSvc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "Ana", list[0].User.FullName)
	assert.Equal(t, "Backend Intern", list[0].Position)
}

func TestTaskAssignmentService_SweepExpired(t *testing.T) {
	ctx := context.Background()
	f := newAssessmentFixture(t)

	expired := f.assign(t, 1)
	fresh := f.assign(t, 48)
	done := f.assign(t, 1)
	_, err := f.submitSvc.Submit(ctx, f.student.ID, SubmitTaskRequest{TaskAssignmentID: done.ID})
	require.NoError(t, err)

	// 刚过截止但仍在宽限期内
	f.assignSvc.Now = fixedClock(t0.Add(time.Hour + time.Minute))
	n, err := f.assignSvc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.assignSvc.Now = fixedClock(t0.Add(2 * time.Hour))
	f.submitSvc.Now = fixedClock(t0.Add(2 * time.Hour))
	n, err = f.assignSvc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sub, err := f.submissions.FindByAssignment(ctx, expired.ID)
	require.NoError(t, err)
	assert.True(t, sub.AutoSubmitted)
	assert.True(t, sub.IsLate)

	stored, err := f.assignments.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, stored.Status)

	// 再次清扫不会重复提交
	n, err = f.assignSvc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, f.submissions.count())
}

func TestTaskAssignmentService_SetGrace(t *testing.T) {
	svc := NewTaskAssignmentService(nil, nil, nil, nil, 0, -time.Minute)
	assert.Equal(t, time.Duration(0), svc.Grace())
	assert.Equal(t, 24, svc.DefaultDeadlineHours)

	svc.SetGrace(10 * time.Minute)
	assert.Equal(t, 10*time.Minute, svc.Grace())
}
