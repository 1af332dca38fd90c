package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memTasks struct {
	mu   sync.Mutex
	byID map[string]*model.Task
}

func (m *memTasks) Create(ctx context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = newID()
	cp := *task
	m.byID[task.ID] = &cp
	return nil
}

func (m *memTasks) FindByID(ctx context.Context, id string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) FindByUser(ctx context.Context, userID string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Task
	for _, t := range m.byID {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTasks) FindByApplication(ctx context.Context, applicationID string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Task
	for _, t := range m.byID {
		if t.ApplicationID == applicationID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTasks) CountByApplication(ctx context.Context, applicationID string) (int64, error) {
	tasks, _ := m.FindByApplication(ctx, applicationID)
	return int64(len(tasks)), nil
}

func (m *memTasks) List(ctx context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Task, 0, len(m.byID))
	for _, t := range m.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTasks) Update(ctx context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *task
	m.byID[task.ID] = &cp
	return nil
}

func (m *memTasks) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func TestTaskService_CreateAndStatus(t *testing.T) {
	ctx := context.Background()
	apps := newMemApps(nil)
	app := &model.Application{UserID: "student-1", Position: "Intern"}
	require.NoError(t, apps.Create(ctx, app))

	svc := NewTaskService(&memTasks{byID: map[string]*model.Task{}}, apps)
	svc.Now = fixedClock(t0)

	_, err := svc.Create(ctx, CreateTaskRequest{ApplicationID: app.ID, UserID: "student-2", TaskNumber: "1", Title: "Essay"})
	assert.ErrorIs(t, err, util.ErrUserMismatch)

	task, err := svc.Create(ctx, CreateTaskRequest{ApplicationID: app.ID, UserID: "student-1", TaskNumber: "1", Title: "Essay"})
	require.NoError(t, err)
	assert.Equal(t, 24, task.Deadline)
	assert.Equal(t, model.TaskPending, task.Status)

	_, err = svc.UpdateStatus(ctx, "student-2", false, task.ID, model.TaskSubmitted)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.UpdateStatus(ctx, "student-1", false, task.ID, "Done")
	assert.Error(t, err)

	submitted, err := svc.UpdateStatus(ctx, "student-1", false, task.ID, model.TaskSubmitted)
	require.NoError(t, err)
	require.NotNil(t, submitted.SubmittedAt)
	assert.Equal(t, t0, *submitted.SubmittedAt)

	// 再次提交保留第一次的时间
	svc.Now = fixedClock(t0.Add(time.Hour))
	again, err := svc.UpdateStatus(ctx, "admin-1", true, task.ID, model.TaskSubmitted)
	require.NoError(t, err)
	assert.Equal(t, t0, *again.SubmittedAt)

	require.NoError(t, svc.Delete(ctx, task.ID))
	_, err = svc.Get(ctx, "student-1", false, task.ID)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}
