package service

import (
	"context"
	"fmt"
	"strings"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"
)

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	FindByUser(ctx context.Context, userID string) ([]model.Task, error)
	FindByApplication(ctx context.Context, applicationID string) ([]model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}

// TaskService 早期不带模板的自由格式任务
type TaskService struct {
	Tasks        TaskStore
	Applications ApplicationFinder
	Now          Clock
}

func NewTaskService(tasks TaskStore, apps ApplicationFinder) *TaskService {
	return &TaskService{Tasks: tasks, Applications: apps}
}

type CreateTaskRequest struct {
	ApplicationID string `json:"applicationId" binding:"required"`
	UserID        string `json:"userId" binding:"required"`
	TaskNumber    string `json:"taskNumber" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Instructions  string `json:"instructions"`
	ResourceURL   string `json:"resourceUrl"`
	Deadline      int    `json:"deadline"`
}

type UpdateTaskRequest struct {
	TaskNumber   *string           `json:"taskNumber"`
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Instructions *string           `json:"instructions"`
	ResourceURL  *string           `json:"resourceUrl"`
	Deadline     *int              `json:"deadline"`
	Status       *model.TaskStatus `json:"status"`
}

type UpdateTaskStatusRequest struct {
	Status model.TaskStatus `json:"status" binding:"required"`
}

func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*model.Task, error) {
	app, err := s.Applications.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, notFound(err, util.ErrApplicationNotFound)
	}
	if app.UserID != req.UserID {
		return nil, util.ErrUserMismatch
	}
	if req.Deadline < 0 {
		return nil, util.NewValidationError("Deadline cannot be negative")
	}
	deadline := req.Deadline
	if deadline == 0 {
		deadline = 24
	}

	task := &model.Task{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		TaskNumber:    strings.TrimSpace(req.TaskNumber),
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Instructions:  req.Instructions,
		ResourceURL:   strings.TrimSpace(req.ResourceURL),
		Deadline:      deadline,
		Status:        model.TaskPending,
		AssignedAt:    s.Now.Now(),
	}
	if err := s.Tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) MyTasks(ctx context.Context, userID string) ([]model.Task, error) {
	return s.Tasks.FindByUser(ctx, userID)
}

func (s *TaskService) ListAll(ctx context.Context) ([]model.Task, error) {
	return s.Tasks.List(ctx)
}

func (s *TaskService) ByApplication(ctx context.Context, applicationID string) ([]model.Task, error) {
	return s.Tasks.FindByApplication(ctx, applicationID)
}

func (s *TaskService) Get(ctx context.Context, viewerID string, isAdmin bool, id string) (*model.Task, error) {
	task, err := s.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTaskNotFound)
	}
	if !isAdmin && task.UserID != viewerID {
		return nil, util.ErrPermissionDenied
	}
	return task, nil
}

// UpdateStatus 进入 Submitted 时记录提交时间
func (s *TaskService) UpdateStatus(ctx context.Context, viewerID string, isAdmin bool, id string, status model.TaskStatus) (*model.Task, error) {
	if !status.Valid() {
		return nil, util.NewValidationError("Invalid status: " + string(status))
	}
	task, err := s.Get(ctx, viewerID, isAdmin, id)
	if err != nil {
		return nil, err
	}
	s.applyStatus(task, status)
	if err := s.Tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) applyStatus(task *model.Task, status model.TaskStatus) {
	task.Status = status
	if status == model.TaskSubmitted && task.SubmittedAt == nil {
		now := s.Now.Now()
		task.SubmittedAt = &now
	}
}

func (s *TaskService) Update(ctx context.Context, id string, req UpdateTaskRequest) (*model.Task, error) {
	task, err := s.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrTaskNotFound)
	}
	if req.TaskNumber != nil {
		task.TaskNumber = strings.TrimSpace(*req.TaskNumber)
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, util.NewValidationError("Title cannot be empty")
		}
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Instructions != nil {
		task.Instructions = *req.Instructions
	}
	if req.ResourceURL != nil {
		task.ResourceURL = strings.TrimSpace(*req.ResourceURL)
	}
	if req.Deadline != nil {
		if *req.Deadline <= 0 {
			return nil, util.NewValidationError("Deadline must be a positive number of hours")
		}
		task.Deadline = *req.Deadline
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, util.NewValidationError("Invalid status: " + string(*req.Status))
		}
		s.applyStatus(task, *req.Status)
	}
	if err := s.Tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.Tasks.FindByID(ctx, id); err != nil {
		return notFound(err, util.ErrTaskNotFound)
	}
	return s.Tasks.Delete(ctx, id)
}
