package repository

import (
	"context"
	"time"

	"job_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type TaskAssignmentRepository struct {
	DB *gorm.DB
}

func NewTaskAssignmentRepository(db *gorm.DB) *TaskAssignmentRepository {
	return &TaskAssignmentRepository{DB: db}
}

var openStatuses = []model.TaskStatus{model.TaskPending, model.TaskInProgress}

func (r *TaskAssignmentRepository) Create(ctx context.Context, a *model.TaskAssignment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *TaskAssignmentRepository) FindByID(ctx context.Context, id string) (*model.TaskAssignment, error) {
	var a model.TaskAssignment
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *TaskAssignmentRepository) FindByUser(ctx context.Context, userID string) ([]model.TaskAssignment, error) {
	var list []model.TaskAssignment
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("assigned_at DESC").Find(&list).Error
	return list, err
}

func (r *TaskAssignmentRepository) FindByApplication(ctx context.Context, applicationID string) ([]model.TaskAssignment, error) {
	var list []model.TaskAssignment
	err := r.DB.WithContext(ctx).Where("application_id = ?", applicationID).Order("assigned_at DESC").Find(&list).Error
	return list, err
}

func (r *TaskAssignmentRepository) List(ctx context.Context) ([]model.TaskAssignment, error) {
	var list []model.TaskAssignment
	err := r.DB.WithContext(ctx).Order("assigned_at DESC").Find(&list).Error
	return list, err
}

func (r *TaskAssignmentRepository) CountByTemplate(ctx context.Context, templateID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TaskAssignment{}).
		Where("task_template_id = ?", templateID).
		Count(&count).Error
	return count, err
}

func (r *TaskAssignmentRepository) CountByApplication(ctx context.Context, applicationID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TaskAssignment{}).
		Where("application_id = ?", applicationID).
		Count(&count).Error
	return count, err
}

// MarkStarted 仅当状态仍为 Pending 时切换到 In Progress，返回是否发生了切换
func (r *TaskAssignmentRepository) MarkStarted(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.TaskAssignment{}).
		Where("id = ? AND status = ?", id, model.TaskPending).
		Updates(map[string]interface{}{
			"status":     model.TaskInProgress,
			"started_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

// FindExpired 查找 expires_at 早于 before 且仍可作答的分配
func (r *TaskAssignmentRepository) FindExpired(ctx context.Context, before time.Time) ([]model.TaskAssignment, error) {
	var list []model.TaskAssignment
	err := r.DB.WithContext(ctx).
		Where("status IN ? AND expires_at < ?", openStatuses, before).
		Order("expires_at ASC").
		Find(&list).Error
	return list, err
}

// Delete 同时删除该分配下的提交与答案
func (r *TaskAssignmentRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subIDs []string
		if err := tx.Model(&model.TaskSubmission{}).Where("task_assignment_id = ?", id).Pluck("id", &subIDs).Error; err != nil {
			return err
		}
		if len(subIDs) > 0 {
			if err := tx.Where("submission_id IN ?", subIDs).Delete(&model.TaskAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", subIDs).Delete(&model.TaskSubmission{}).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&model.TaskAssignment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
