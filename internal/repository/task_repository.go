package repository

import (
	"context"

	"job_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.DB.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindByUser(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("assigned_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) FindByApplication(ctx context.Context, applicationID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.DB.WithContext(ctx).Where("application_id = ?", applicationID).Order("assigned_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) CountByApplication(ctx context.Context, applicationID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Task{}).Where("application_id = ?", applicationID).Count(&count).Error
	return count, err
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.DB.WithContext(ctx).Order("assigned_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.DB.WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}
