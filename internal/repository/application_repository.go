package repository

import (
	"context"

	"job_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// Create 写入投递记录，关联岗位时同一事务内累加 applicant_count
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		if app.JobID == nil {
			return nil
		}
		return tx.Model(&model.Job{}).
			Where("id = ?", *app.JobID).
			UpdateColumn("applicant_count", gorm.Expr("applicant_count + 1")).
			Error
	})
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) ExistsForJob(ctx context.Context, userID, jobID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepository) FindByUser(ctx context.Context, userID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("applied_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) FindByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.DB.WithContext(ctx).Where("job_id = ?", jobID).Order("applied_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) List(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	err := r.DB.WithContext(ctx).Order("applied_at DESC").Find(&apps).Error
	return apps, err
}

// Count status 为空时统计全部
func (r *ApplicationRepository) Count(ctx context.Context, status model.ApplicationStatus) (int64, error) {
	var count int64
	query := r.DB.WithContext(ctx).Model(&model.Application{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *ApplicationRepository) CountByJobs(ctx context.Context, jobIDs []string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Application{}).
		Where("job_id IN ?", jobIDs).
		Count(&count).Error
	return count, err
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	return r.DB.WithContext(ctx).Model(&model.Application{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// Delete 删除投递记录并回退岗位的 applicant_count
func (r *ApplicationRepository) Delete(ctx context.Context, app *model.Application) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", app.ID).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		if app.JobID == nil {
			return nil
		}
		return tx.Model(&model.Job{}).
			Where("id = ? AND applicant_count > 0", *app.JobID).
			UpdateColumn("applicant_count", gorm.Expr("applicant_count - 1")).
			Error
	})
}
