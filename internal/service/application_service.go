package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"
	"job_assessment_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id string) (*model.Application, error)
	ExistsForJob(ctx context.Context, userID, jobID string) (bool, error)
	FindByUser(ctx context.Context, userID string) ([]model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
	Count(ctx context.Context, status model.ApplicationStatus) (int64, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error
	Delete(ctx context.Context, app *model.Application) error
}

type JobFinder interface {
	FindByID(ctx context.Context, id string) (*model.Job, error)
}

// ApplicationUsage 统计引用某个投递的记录（任务分配、旧版任务）
type ApplicationUsage interface {
	CountByApplication(ctx context.Context, applicationID string) (int64, error)
}

type ApplicationService struct {
	Applications ApplicationStore
	Jobs         JobFinder
	Users        UserStore
	Cache        JobCache
	Usage        []ApplicationUsage
	Now          Clock
}

func NewApplicationService(apps ApplicationStore, jobs JobFinder, users UserStore, cache JobCache, usage ...ApplicationUsage) *ApplicationService {
	return &ApplicationService{Applications: apps, Jobs: jobs, Users: users, Cache: cache, Usage: usage}
}

// SubmitApplicationRequest 列表字段为 nil 时从当前个人资料复制
type SubmitApplicationRequest struct {
	JobID        *string             `json:"jobId"`
	Position     string              `json:"position"`
	CoverMessage string              `json:"coverMessage"`
	Skills       *[]string           `json:"skills"`
	Education    *[]model.Education  `json:"education"`
	Experience   *[]model.Experience `json:"experience"`
}

type UpdateApplicationStatusRequest struct {
	Status model.ApplicationStatus `json:"status" binding:"required"`
}

type ApplicationStats struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"inProgress"`
}

func (s *ApplicationService) Submit(ctx context.Context, userID string, req SubmitApplicationRequest) (*model.Application, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}

	app := &model.Application{
		UserID:       userID,
		Position:     strings.TrimSpace(req.Position),
		Status:       model.ApplicationInProgress,
		CoverMessage: strings.TrimSpace(req.CoverMessage),
		AppliedAt:    s.Now.Now(),
	}

	if req.JobID != nil && strings.TrimSpace(*req.JobID) != "" {
		jobID := strings.TrimSpace(*req.JobID)
		job, err := s.Jobs.FindByID(ctx, jobID)
		if err != nil {
			return nil, notFound(err, util.ErrJobNotFound)
		}
		if !job.IsActive {
			return nil, util.ErrJobInactive
		}
		exists, err := s.Applications.ExistsForJob(ctx, userID, jobID)
		if err != nil {
			return nil, fmt.Errorf("check existing application: %w", err)
		}
		if exists {
			return nil, util.ErrAlreadyApplied
		}
		app.JobID = &jobID
		if app.Position == "" {
			app.Position = job.Title
		}
	}
	if app.Position == "" {
		return nil, util.NewValidationError("Position is required")
	}

	// 快照：请求里给出的列表优先，否则深拷贝当前资料
	if req.Skills != nil {
		app.Skills = util.CompactStrings(*req.Skills)
	} else {
		app.Skills = append([]string{}, user.Skills...)
	}
	if req.Education != nil {
		app.Education = cleanEducation(*req.Education)
	} else {
		app.Education = append([]model.Education{}, user.Education...)
	}
	if req.Experience != nil {
		app.Experience = cleanExperience(*req.Experience)
	} else {
		app.Experience = append([]model.Experience{}, user.Experience...)
	}

	if err := s.Applications.Create(ctx, app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyApplied
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	if app.JobID != nil && s.Cache != nil {
		// applicant_count 变化
		_ = s.Cache.DeleteByPrefix(ctx, util.CacheKeyJobPrefix)
	}

	logger.Log.Info("application submitted",
		zap.String("applicationId", app.ID),
		zap.String("userId", userID),
		zap.String("position", app.Position))
	return app, nil
}

func (s *ApplicationService) MyApplications(ctx context.Context, userID string) ([]model.Application, error) {
	return s.Applications.FindByUser(ctx, userID)
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]model.Application, error) {
	apps, err := s.Applications.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := attachApplicants(ctx, s.Users, apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) Stats(ctx context.Context) (*ApplicationStats, error) {
	var (
		stats ApplicationStats
		err   error
	)
	if stats.Total, err = s.Applications.Count(ctx, ""); err != nil {
		return nil, err
	}
	if stats.Completed, err = s.Applications.Count(ctx, model.ApplicationCompleted); err != nil {
		return nil, err
	}
	if stats.InProgress, err = s.Applications.Count(ctx, model.ApplicationInProgress); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Get 学生只能查看自己的投递
func (s *ApplicationService) Get(ctx context.Context, viewerID string, isAdmin bool, id string) (*model.Application, error) {
	app, err := s.Applications.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrApplicationNotFound)
	}
	if !isAdmin && app.UserID != viewerID {
		return nil, util.ErrPermissionDenied
	}
	if user, err := s.Users.FindByID(ctx, app.UserID); err == nil {
		app.User = user.Summary()
	} else if !isNotFound(err) {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	if !status.Valid() {
		return nil, util.NewValidationError("Invalid status: " + string(status))
	}
	app, err := s.Applications.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrApplicationNotFound)
	}
	if err := s.Applications.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	app.Status = status
	return app, nil
}

// Delete 仍被任务引用的投递不能删除
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	app, err := s.Applications.FindByID(ctx, id)
	if err != nil {
		return notFound(err, util.ErrApplicationNotFound)
	}
	for _, u := range s.Usage {
		n, err := u.CountByApplication(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return util.ErrApplicationInUse
		}
	}
	if err := s.Applications.Delete(ctx, app); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if app.JobID != nil && s.Cache != nil {
		_ = s.Cache.DeleteByPrefix(ctx, util.CacheKeyJobPrefix)
	}
	return nil
}
