package service

import (
	"context"
	"testing"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/repository"
	"job_assessment_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobService() (*JobService, *memJobs, *memApps, *memCache) {
	jobs := newMemJobs()
	apps := newMemApps(jobs)
	cache := newMemCache()
	return NewJobService(jobs, apps, newMemUsers(), cache, 0), jobs, apps, cache
}

func TestJobService_CreateDefaults(t *testing.T) {
	svc, _, _, cache := newJobService()

	job, err := svc.CreateJob(context.Background(), "admin-1", JobRequest{
		Title:       strPtr("Backend Engineer"),
		Location:    strPtr("Berlin"),
		Description: strPtr("Build APIs"),
		Skills:      &[]string{"Go", " ", "MySQL"},
	})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultCompany, job.Company)
	assert.Equal(t, model.LocationOnSite, job.LocationType)
	assert.Equal(t, model.JobFullTime, job.JobType)
	assert.Equal(t, "USD", job.Salary.Currency)
	assert.True(t, job.IsActive)
	assert.Equal(t, "admin-1", job.PostedBy)
	assert.Equal(t, []string{"Go", "MySQL"}, []string(job.Skills))
	assert.Equal(t, 1, cache.invalidated)
}

func TestJobService_Validation(t *testing.T) {
	svc, _, _, _ := newJobService()
	base := func() JobRequest {
		return JobRequest{Title: strPtr("T"), Location: strPtr("L"), Description: strPtr("D")}
	}

	cases := map[string]func(*JobRequest){
		"missing title":     func(r *JobRequest) { r.Title = strPtr(" ") },
		"bad location type": func(r *JobRequest) { r.LocationType = strPtr("Moon") },
		"bad job type":      func(r *JobRequest) { r.JobType = strPtr("Gig") },
		"salary order":      func(r *JobRequest) { r.Salary = &model.Salary{Min: 100, Max: 50} },
		"negative salary":   func(r *JobRequest) { r.Salary = &model.Salary{Min: -1} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := base()
			mutate(&req)
			_, err := svc.CreateJob(context.Background(), "admin-1", req)
			assert.Error(t, err)
		})
	}
}

func TestJobService_OwnershipAndToggle(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newJobService()

	job, err := svc.CreateJob(ctx, "admin-1", JobRequest{Title: strPtr("T"), Location: strPtr("L"), Description: strPtr("D")})
	require.NoError(t, err)

	_, err = svc.ToggleStatus(ctx, "admin-2", job.ID)
	assert.Error(t, err)

	toggled, err := svc.ToggleStatus(ctx, "admin-1", job.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	public, err := svc.ListJobs(ctx, repository.JobFilter{})
	require.NoError(t, err)
	assert.Empty(t, public)

	mine, err := svc.MyJobs(ctx, "admin-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.Error(t, svc.DeleteJob(ctx, "admin-2", job.ID))
	assert.ErrorIs(t, svc.DeleteJob(ctx, "admin-1", "missing"), util.ErrJobNotFound)
}

func TestJobService_ListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	svc, jobs, _, _ := newJobService()

	_, err := svc.CreateJob(ctx, "admin-1", JobRequest{Title: strPtr("First"), Location: strPtr("L"), Description: strPtr("D")})
	require.NoError(t, err)

	list, err := svc.ListJobs(ctx, repository.JobFilter{Search: "first"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// 绕过服务直接写入，缓存仍返回旧结果
	require.NoError(t, jobs.Create(ctx, &model.Job{Title: "Sneaky", IsActive: true}))
	list, err = svc.ListJobs(ctx, repository.JobFilter{Search: "  FIRST "})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.CreateJob(ctx, "admin-1", JobRequest{Title: strPtr("Second"), Location: strPtr("L"), Description: strPtr("D")})
	require.NoError(t, err)
	// memJobs 不按关键字过滤，失效后能看到全部三条
	list, err = svc.ListJobs(ctx, repository.JobFilter{Search: "first"})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestJobListCacheKey_Normalizes(t *testing.T) {
	a := jobListCacheKey(repository.JobFilter{Search: "Go  Dev", ActiveOnly: true})
	b := jobListCacheKey(repository.JobFilter{Search: "go dev", ActiveOnly: true})
	c := jobListCacheKey(repository.JobFilter{Search: "go dev", JobType: "Internship", ActiveOnly: true})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, util.CacheKeyJobList)
}

func TestJobService_StatsAndApplicants(t *testing.T) {
	ctx := context.Background()
	svc, _, apps, _ := newJobService()
	student := &model.User{FullName: "Ana", Email: "ana@example.com", Role: model.RoleStudent}
	svc.Users = newMemUsers(student)

	job, err := svc.CreateJob(ctx, "admin-1", JobRequest{Title: strPtr("T"), Location: strPtr("L"), Description: strPtr("D")})
	require.NoError(t, err)
	_, err = svc.CreateJob(ctx, "admin-1", JobRequest{Title: strPtr("T2"), Location: strPtr("L"), Description: strPtr("D"), IsActive: new(bool)})
	require.NoError(t, err)
	require.NoError(t, apps.Create(ctx, &model.Application{UserID: student.ID, JobID: &job.ID, Position: "T"}))

	stats, err := svc.Stats(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, JobStats{TotalJobs: 2, ActiveJobs: 1, TotalApplications: 1}, *stats)

	result, err := svc.Applicants(ctx, "admin-1", job.ID)
	require.NoError(t, err)
	require.Len(t, result.Applications, 1)
	assert.Equal(t, "Ana", result.Applications[0].User.FullName)
}

func TestJobService_DeleteJobWithApplications(t *testing.T) {
	ctx := context.Background()
	svc, _, apps, _ := newJobService()

	job, err := svc.CreateJob(ctx, "admin-1", JobRequest{Title: strPtr("T"), Location: strPtr("L"), Description: strPtr("D")})
	require.NoError(t, err)
	app := &model.Application{UserID: "student-1", JobID: &job.ID, Position: "T", Status: model.ApplicationInProgress}
	require.NoError(t, apps.Create(ctx, app))

	assert.ErrorIs(t, svc.DeleteJob(ctx, "admin-1", job.ID), util.ErrJobHasApplications)
	_, err = svc.GetJob(ctx, job.ID)
	require.NoError(t, err)

	require.NoError(t, apps.Delete(ctx, app))
	require.NoError(t, svc.DeleteJob(ctx, "admin-1", job.ID))
	_, err = svc.GetJob(ctx, job.ID)
	assert.ErrorIs(t, err, util.ErrJobNotFound)
}
