package repository

import (
	"context"

	"job_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// JobFilter 为空字段表示不过滤
type JobFilter struct {
	Search       string `json:"search"`
	Location     string `json:"location"`
	JobType      string `json:"jobType"`
	LocationType string `json:"locationType"`
	PostedBy     string `json:"postedBy"`
	ActiveOnly   bool   `json:"activeOnly"`
}

func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.DB.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) List(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	var jobs []model.Job
	query := r.DB.WithContext(ctx).Model(&model.Job{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.PostedBy != "" {
		query = query.Where("posted_by = ?", filter.PostedBy)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR company LIKE ? OR description LIKE ?", like, like, like)
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.JobType != "" {
		query = query.Where("job_type = ?", filter.JobType)
	}
	if filter.LocationType != "" {
		query = query.Where("location_type = ?", filter.LocationType)
	}
	err := query.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Update(ctx context.Context, job *model.Job) error {
	return r.DB.WithContext(ctx).Save(job).Error
}

func (r *JobRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.DB.WithContext(ctx).Model(&model.Job{}).
		Where("id = ?", id).
		Update("is_active", active).
		Error
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Job{}).Error
}
