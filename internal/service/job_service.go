package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/repository"
	"job_assessment_backend/internal/util"
	"job_assessment_backend/pkg/logger"

	"go.uber.org/zap"
)

type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id string) (*model.Job, error)
	List(ctx context.Context, filter repository.JobFilter) ([]model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// JobCache 缓存不可用时实现应当静默跳过
type JobCache interface {
	GetJSON(ctx context.Context, key string, out interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type JobApplicationReader interface {
	FindByJob(ctx context.Context, jobID string) ([]model.Application, error)
	CountByJobs(ctx context.Context, jobIDs []string) (int64, error)
}

type JobService struct {
	Jobs         JobStore
	Applications JobApplicationReader
	Users        UserStore
	Cache        JobCache
	TTL          time.Duration
}

func NewJobService(jobs JobStore, apps JobApplicationReader, users UserStore, cache JobCache, ttl time.Duration) *JobService {
	return &JobService{Jobs: jobs, Applications: apps, Users: users, Cache: cache, TTL: ttl}
}

// JobRequest 创建时未给出的字段取默认值，更新时只修改非 nil 字段
type JobRequest struct {
	Title            *string       `json:"title"`
	Company          *string       `json:"company"`
	Location         *string       `json:"location"`
	LocationType     *string       `json:"locationType"`
	JobType          *string       `json:"jobType"`
	Experience       *string       `json:"experience"`
	Salary           *model.Salary `json:"salary"`
	Description      *string       `json:"description"`
	Responsibilities *[]string     `json:"responsibilities"`
	Requirements     *[]string     `json:"requirements"`
	Skills           *[]string     `json:"skills"`
	Benefits         *[]string     `json:"benefits"`
	Deadline         *time.Time    `json:"deadline"`
	IsActive         *bool         `json:"isActive"`
}

type JobStats struct {
	TotalJobs         int   `json:"totalJobs"`
	ActiveJobs        int   `json:"activeJobs"`
	TotalApplications int64 `json:"totalApplications"`
}

type JobApplicants struct {
	Job          *model.Job          `json:"job"`
	Applications []model.Application `json:"applications"`
}

func (r JobRequest) applyTo(job *model.Job) {
	if r.Title != nil {
		job.Title = strings.TrimSpace(*r.Title)
	}
	if r.Company != nil {
		job.Company = strings.TrimSpace(*r.Company)
	}
	if r.Location != nil {
		job.Location = strings.TrimSpace(*r.Location)
	}
	if r.LocationType != nil {
		job.LocationType = model.LocationType(*r.LocationType)
	}
	if r.JobType != nil {
		job.JobType = model.JobType(*r.JobType)
	}
	if r.Experience != nil {
		job.Experience = strings.TrimSpace(*r.Experience)
	}
	if r.Salary != nil {
		job.Salary = *r.Salary
	}
	if r.Description != nil {
		job.Description = strings.TrimSpace(*r.Description)
	}
	if r.Responsibilities != nil {
		job.Responsibilities = util.CompactStrings(*r.Responsibilities)
	}
	if r.Requirements != nil {
		job.Requirements = util.CompactStrings(*r.Requirements)
	}
	if r.Skills != nil {
		job.Skills = util.CompactStrings(*r.Skills)
	}
	if r.Benefits != nil {
		job.Benefits = util.CompactStrings(*r.Benefits)
	}
	if r.Deadline != nil {
		job.Deadline = r.Deadline
	}
	if r.IsActive != nil {
		job.IsActive = *r.IsActive
	}
}

func validateJob(job *model.Job) error {
	switch {
	case job.Title == "":
		return util.NewValidationError("Title is required")
	case job.Location == "":
		return util.NewValidationError("Location is required")
	case job.Description == "":
		return util.NewValidationError("Description is required")
	case !job.LocationType.Valid():
		return util.NewValidationError("Invalid location type: " + string(job.LocationType))
	case !job.JobType.Valid():
		return util.NewValidationError("Invalid job type: " + string(job.JobType))
	case job.Salary.Min < 0 || job.Salary.Max < 0:
		return util.NewValidationError("Salary cannot be negative")
	case job.Salary.Min > 0 && job.Salary.Max > 0 && job.Salary.Min > job.Salary.Max:
		return util.NewValidationError("Minimum salary cannot exceed maximum salary")
	}
	return nil
}

// jobListCacheKey 规范化筛选条件后做哈希，大小写和多余空白不影响命中
func jobListCacheKey(filter repository.JobFilter) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	in := repository.JobFilter{
		Search:       norm(filter.Search),
		Location:     norm(filter.Location),
		JobType:      filter.JobType,
		LocationType: filter.LocationType,
		ActiveOnly:   filter.ActiveOnly,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return util.CacheKeyJobList + hex.EncodeToString(sum[:])
}

func (s *JobService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.Cache == nil {
		return false
	}
	hit, err := s.Cache.GetJSON(ctx, key, out)
	if err != nil {
		logger.Log.Debug("job cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *JobService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.SetJSON(ctx, key, value, s.TTL); err != nil {
		logger.Log.Debug("job cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *JobService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeleteByPrefix(ctx, util.CacheKeyJobPrefix); err != nil {
		logger.Log.Warn("job cache invalidation failed", zap.Error(err))
	}
}

// ListJobs 公开岗位列表，只返回上架中的岗位
func (s *JobService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]model.Job, error) {
	filter.ActiveOnly = true
	filter.PostedBy = ""
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Location = strings.TrimSpace(filter.Location)

	key := jobListCacheKey(filter)
	var cached []model.Job
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	jobs, err := s.Jobs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	s.cacheSet(ctx, key, jobs)
	return jobs, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	key := util.CacheKeyJobDetail + id
	var cached model.Job
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	job, err := s.Jobs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrJobNotFound)
	}
	s.cacheSet(ctx, key, job)
	return job, nil
}

func (s *JobService) CreateJob(ctx context.Context, adminID string, req JobRequest) (*model.Job, error) {
	job := &model.Job{
		Company:      model.DefaultCompany,
		LocationType: model.LocationOnSite,
		JobType:      model.JobFullTime,
		Salary:       model.Salary{Currency: "USD"},
		IsActive:     true,
		PostedBy:     adminID,
	}
	req.applyTo(job)
	if job.Company == "" {
		job.Company = model.DefaultCompany
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	if err := s.Jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.invalidate(ctx)
	logger.Log.Info("job created", zap.String("jobId", job.ID), zap.String("postedBy", adminID))
	return job, nil
}

// ownedJob 只有发布者本人可以管理岗位
func (s *JobService) ownedJob(ctx context.Context, adminID, id string) (*model.Job, error) {
	job, err := s.Jobs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrJobNotFound)
	}
	if job.PostedBy != adminID {
		return nil, util.NewForbiddenError("You can only manage jobs you posted")
	}
	return job, nil
}

func (s *JobService) UpdateJob(ctx context.Context, adminID, id string, req JobRequest) (*model.Job, error) {
	job, err := s.ownedJob(ctx, adminID, id)
	if err != nil {
		return nil, err
	}
	req.applyTo(job)
	if job.Company == "" {
		job.Company = model.DefaultCompany
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}
	if err := s.Jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	s.invalidate(ctx)
	return job, nil
}

func (s *JobService) ToggleStatus(ctx context.Context, adminID, id string) (*model.Job, error) {
	job, err := s.ownedJob(ctx, adminID, id)
	if err != nil {
		return nil, err
	}
	job.IsActive = !job.IsActive
	if err := s.Jobs.SetActive(ctx, id, job.IsActive); err != nil {
		return nil, fmt.Errorf("toggle job: %w", err)
	}
	s.invalidate(ctx)
	return job, nil
}

// DeleteJob 已有投递的岗位只能下架，不能删除
func (s *JobService) DeleteJob(ctx context.Context, adminID, id string) error {
	if _, err := s.ownedJob(ctx, adminID, id); err != nil {
		return err
	}
	n, err := s.Applications.CountByJobs(ctx, []string{id})
	if err != nil {
		return err
	}
	if n > 0 {
		return util.ErrJobHasApplications
	}
	if err := s.Jobs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *JobService) MyJobs(ctx context.Context, adminID string) ([]model.Job, error) {
	return s.Jobs.List(ctx, repository.JobFilter{PostedBy: adminID})
}

func (s *JobService) Stats(ctx context.Context, adminID string) (*JobStats, error) {
	jobs, err := s.Jobs.List(ctx, repository.JobFilter{PostedBy: adminID})
	if err != nil {
		return nil, err
	}
	stats := &JobStats{TotalJobs: len(jobs)}
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		if j.IsActive {
			stats.ActiveJobs++
		}
		ids = append(ids, j.ID)
	}
	if stats.TotalApplications, err = s.Applications.CountByJobs(ctx, ids); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *JobService) Applicants(ctx context.Context, adminID, jobID string) (*JobApplicants, error) {
	job, err := s.ownedJob(ctx, adminID, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := s.Applications.FindByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := attachApplicants(ctx, s.Users, apps); err != nil {
		return nil, err
	}
	return &JobApplicants{Job: job, Applications: apps}, nil
}

// attachApplicants 给投递记录补充投递人身份，用户已被删除时保持为空
func attachApplicants(ctx context.Context, users UserStore, apps []model.Application) error {
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.UserID)
	}
	byID, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range apps {
		apps[i].User = byID[apps[i].UserID].Summary()
	}
	return nil
}
