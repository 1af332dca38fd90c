package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/repository"

	"gorm.io/gorm"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newID() string { return model.GenerateUUID() }

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*model.User
}

func newMemUsers(users ...*model.User) *memUsers {
	m := &memUsers{byID: make(map[string]*model.User)}
	for _, u := range users {
		if u.ID == "" {
			u.ID = newID()
		}
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

// FindByID 返回存储对象本身，便于测试修改资料后观察快照
func (m *memUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) FindByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*model.User)
	for _, id := range ids {
		if u, ok := m.byID[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *memUsers) List(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.User
	for _, u := range m.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) Update(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUsers) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (m *memUsers) UpdateLastSeen(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		u.LastSeen = &at
	}
	return nil
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.byID, id)
	return nil
}

type memJobs struct {
	mu   sync.Mutex
	byID map[string]*model.Job
}

func newMemJobs(jobs ...*model.Job) *memJobs {
	m := &memJobs{byID: make(map[string]*model.Job)}
	for _, j := range jobs {
		if j.ID == "" {
			j.ID = newID()
		}
		m.byID[j.ID] = j
	}
	return m
}

func (m *memJobs) Create(ctx context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.ID == "" {
		job.ID = newID()
	}
	cp := *job
	m.byID[job.ID] = &cp
	return nil
}

func (m *memJobs) FindByID(ctx context.Context, id string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memJobs) List(ctx context.Context, filter repository.JobFilter) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Job
	for _, j := range m.byID {
		if filter.ActiveOnly && !j.IsActive {
			continue
		}
		if filter.PostedBy != "" && j.PostedBy != filter.PostedBy {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (m *memJobs) Update(ctx context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *job
	m.byID[job.ID] = &cp
	return nil
}

func (m *memJobs) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	j.IsActive = active
	return nil
}

func (m *memJobs) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memApps struct {
	mu   sync.Mutex
	jobs *memJobs
	byID map[string]*model.Application
}

func newMemApps(jobs *memJobs) *memApps {
	return &memApps{jobs: jobs, byID: make(map[string]*model.Application)}
}

func (m *memApps) Create(ctx context.Context, app *model.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if app.JobID != nil {
		for _, a := range m.byID {
			if a.UserID == app.UserID && a.JobID != nil && *a.JobID == *app.JobID {
				return gorm.ErrDuplicatedKey
			}
		}
		if m.jobs != nil {
			m.jobs.mu.Lock()
			if j, ok := m.jobs.byID[*app.JobID]; ok {
				j.ApplicantCount++
			}
			m.jobs.mu.Unlock()
		}
	}
	if app.ID == "" {
		app.ID = newID()
	}
	cp := *app
	m.byID[app.ID] = &cp
	return nil
}

func (m *memApps) FindByID(ctx context.Context, id string) (*model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memApps) ExistsForJob(ctx context.Context, userID, jobID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.UserID == userID && a.JobID != nil && *a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memApps) filter(keep func(*model.Application) bool) []model.Application {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Application
	for _, a := range m.byID {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (m *memApps) FindByUser(ctx context.Context, userID string) ([]model.Application, error) {
	return m.filter(func(a *model.Application) bool { return a.UserID == userID }), nil
}

func (m *memApps) FindByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	return m.filter(func(a *model.Application) bool { return a.JobID != nil && *a.JobID == jobID }), nil
}

func (m *memApps) List(ctx context.Context) ([]model.Application, error) {
	return m.filter(func(*model.Application) bool { return true }), nil
}

func (m *memApps) Count(ctx context.Context, status model.ApplicationStatus) (int64, error) {
	return int64(len(m.filter(func(a *model.Application) bool { return status == "" || a.Status == status }))), nil
}

func (m *memApps) CountByJobs(ctx context.Context, jobIDs []string) (int64, error) {
	set := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		set[id] = true
	}
	return int64(len(m.filter(func(a *model.Application) bool { return a.JobID != nil && set[*a.JobID] }))), nil
}

func (m *memApps) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (m *memApps) Delete(ctx context.Context, app *model.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, app.ID)
	if app.JobID != nil && m.jobs != nil {
		m.jobs.mu.Lock()
		if j, ok := m.jobs.byID[*app.JobID]; ok && j.ApplicantCount > 0 {
			j.ApplicantCount--
		}
		m.jobs.mu.Unlock()
	}
	return nil
}

type memTemplates struct {
	mu   sync.Mutex
	byID map[string]*model.TaskTemplate
}

func newMemTemplates() *memTemplates {
	return &memTemplates{byID: make(map[string]*model.TaskTemplate)}
}

func cloneTemplate(t *model.TaskTemplate) *model.TaskTemplate {
	cp := *t
	cp.Questions = append([]model.TaskQuestion(nil), t.Questions...)
	return &cp
}

func (m *memTemplates) Create(ctx context.Context, tpl *model.TaskTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.byID {
		if t.TaskNumber == tpl.TaskNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if tpl.ID == "" {
		tpl.ID = newID()
	}
	for i := range tpl.Questions {
		if tpl.Questions[i].ID == "" {
			tpl.Questions[i].ID = newID()
		}
		tpl.Questions[i].TemplateID = tpl.ID
	}
	m.byID[tpl.ID] = cloneTemplate(tpl)
	return nil
}

func (m *memTemplates) FindByID(ctx context.Context, id string) (*model.TaskTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneTemplate(t), nil
}

func (m *memTemplates) FindByNumber(ctx context.Context, taskNumber string) (*model.TaskTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.byID {
		if t.TaskNumber == taskNumber {
			return cloneTemplate(t), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memTemplates) FindByIDs(ctx context.Context, ids []string) (map[string]*model.TaskTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*model.TaskTemplate)
	for _, id := range ids {
		if t, ok := m.byID[id]; ok {
			out[id] = cloneTemplate(t)
		}
	}
	return out, nil
}

func (m *memTemplates) List(ctx context.Context) ([]model.TaskTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TaskTemplate
	for _, t := range m.byID {
		out = append(out, *cloneTemplate(t))
	}
	return out, nil
}

func (m *memTemplates) ListNumbers(ctx context.Context) ([]model.TemplateNumber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TemplateNumber
	for _, t := range m.byID {
		out = append(out, model.TemplateNumber{ID: t.ID, TaskNumber: t.TaskNumber, Title: t.Title})
	}
	return out, nil
}

func (m *memTemplates) Replace(ctx context.Context, tpl *model.TaskTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range tpl.Questions {
		if tpl.Questions[i].ID == "" {
			tpl.Questions[i].ID = newID()
		}
	}
	m.byID[tpl.ID] = cloneTemplate(tpl)
	return nil
}

func (m *memTemplates) UpdateResourceURL(ctx context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byID[id]; ok {
		t.ResourceURL = url
	}
	return nil
}

func (m *memTemplates) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memAssignments struct {
	mu   sync.Mutex
	byID map[string]*model.TaskAssignment
}

func newMemAssignments() *memAssignments {
	return &memAssignments{byID: make(map[string]*model.TaskAssignment)}
}

func (m *memAssignments) Create(ctx context.Context, a *model.TaskAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memAssignments) FindByID(ctx context.Context, id string) (*model.TaskAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAssignments) filter(keep func(*model.TaskAssignment) bool) []model.TaskAssignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TaskAssignment
	for _, a := range m.byID {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (m *memAssignments) FindByUser(ctx context.Context, userID string) ([]model.TaskAssignment, error) {
	return m.filter(func(a *model.TaskAssignment) bool { return a.UserID == userID }), nil
}

func (m *memAssignments) FindByApplication(ctx context.Context, applicationID string) ([]model.TaskAssignment, error) {
	return m.filter(func(a *model.TaskAssignment) bool { return a.ApplicationID == applicationID }), nil
}

func (m *memAssignments) List(ctx context.Context) ([]model.TaskAssignment, error) {
	return m.filter(func(*model.TaskAssignment) bool { return true }), nil
}

func (m *memAssignments) CountByTemplate(ctx context.Context, templateID string) (int64, error) {
	return int64(len(m.filter(func(a *model.TaskAssignment) bool { return a.TaskTemplateID == templateID }))), nil
}

func (m *memAssignments) CountByApplication(ctx context.Context, applicationID string) (int64, error) {
	return int64(len(m.filter(func(a *model.TaskAssignment) bool { return a.ApplicationID == applicationID }))), nil
}

func (m *memAssignments) MarkStarted(ctx context.Context, id string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok || a.Status != model.TaskPending {
		return false, nil
	}
	a.Status = model.TaskInProgress
	a.StartedAt = &at
	return true, nil
}

func (m *memAssignments) FindExpired(ctx context.Context, before time.Time) ([]model.TaskAssignment, error) {
	return m.filter(func(a *model.TaskAssignment) bool {
		return a.Status.Open() && a.ExpiresAt.Before(before)
	}), nil
}

func (m *memAssignments) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.byID, id)
	return nil
}

// memSubmissions 与 memAssignments 共享状态，模拟条件更新加唯一索引
type memSubmissions struct {
	mu          sync.Mutex
	assignments *memAssignments
	byID        map[string]*model.TaskSubmission
}

func newMemSubmissions(assignments *memAssignments) *memSubmissions {
	return &memSubmissions{assignments: assignments, byID: make(map[string]*model.TaskSubmission)}
}

func (m *memSubmissions) CreateForAssignment(ctx context.Context, sub *model.TaskSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assignments.mu.Lock()
	a, ok := m.assignments.byID[sub.TaskAssignmentID]
	if !ok || !a.Status.Open() {
		m.assignments.mu.Unlock()
		return repository.ErrAssignmentClosed
	}
	a.Status = model.TaskSubmitted
	at := sub.SubmittedAt
	a.SubmittedAt = &at
	m.assignments.mu.Unlock()

	for _, s := range m.byID {
		if s.TaskAssignmentID == sub.TaskAssignmentID {
			return gorm.ErrDuplicatedKey
		}
	}
	if sub.ID == "" {
		sub.ID = newID()
	}
	for i := range sub.Answers {
		if sub.Answers[i].ID == "" {
			sub.Answers[i].ID = newID()
		}
		sub.Answers[i].SubmissionID = sub.ID
	}
	cp := *sub
	cp.Answers = append([]model.TaskAnswer(nil), sub.Answers...)
	m.byID[sub.ID] = &cp
	return nil
}

func (m *memSubmissions) get(keep func(*model.TaskSubmission) bool) []model.TaskSubmission {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TaskSubmission
	for _, s := range m.byID {
		if keep(s) {
			cp := *s
			cp.Answers = append([]model.TaskAnswer(nil), s.Answers...)
			out = append(out, cp)
		}
	}
	return out
}

func (m *memSubmissions) FindByID(ctx context.Context, id string) (*model.TaskSubmission, error) {
	list := m.get(func(s *model.TaskSubmission) bool { return s.ID == id })
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[0], nil
}

func (m *memSubmissions) FindByAssignment(ctx context.Context, assignmentID string) (*model.TaskSubmission, error) {
	list := m.get(func(s *model.TaskSubmission) bool { return s.TaskAssignmentID == assignmentID })
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[0], nil
}

func (m *memSubmissions) FindByUser(ctx context.Context, userID string) ([]model.TaskSubmission, error) {
	return m.get(func(s *model.TaskSubmission) bool { return s.UserID == userID }), nil
}

func (m *memSubmissions) SaveReview(ctx context.Context, sub *model.TaskSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sub
	cp.Answers = append([]model.TaskAnswer(nil), sub.Answers...)
	m.byID[sub.ID] = &cp

	m.assignments.mu.Lock()
	if a, ok := m.assignments.byID[sub.TaskAssignmentID]; ok {
		a.Status = model.TaskCompleted
	}
	m.assignments.mu.Unlock()
	return nil
}

func (m *memSubmissions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// memCache 记录失效调用
type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}
