package controller

import (
	"job_assessment_backend/internal/repository"
	"job_assessment_backend/internal/service"
	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JobController struct {
	JobService *service.JobService
}

func NewJobController(jobService *service.JobService) *JobController {
	return &JobController{JobService: jobService}
}

// ListJobs godoc
// @Summary 公开岗位列表
// @Tags 岗位
// @Produce json
// @Param search query string false "标题/公司/描述关键字"
// @Param location query string false "地点"
// @Param jobType query string false "Full-time, Part-time, Contract, Internship"
// @Param locationType query string false "On-site, Remote, Hybrid"
// @Success 200 {array} model.Job
// @Router /jobs/all [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	filter := repository.JobFilter{
		Search:       ctx.Query("search"),
		Location:     ctx.Query("location"),
		JobType:      ctx.Query("jobType"),
		LocationType: ctx.Query("locationType"),
	}
	jobs, err := c.JobService.ListJobs(ctx.Request.Context(), filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, jobs)
}

// GetJob godoc
// @Summary 岗位详情
// @Tags 岗位
// @Produce json
// @Param id path string true "岗位ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} util.ErrorResponse
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	job, err := c.JobService.GetJob(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, job)
}

// CreateJob godoc
// @Summary 发布岗位
// @Tags 岗位管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.JobRequest true "岗位信息"
// @Success 201 {object} model.Job
// @Router /jobs/create [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var req service.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	job, err := c.JobService.CreateJob(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Job created successfully", "job", job)
}

// UpdateJob godoc
// @Summary 修改岗位
// @Tags 岗位管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "岗位ID"
// @Param body body service.JobRequest true "需要修改的字段"
// @Success 200 {object} model.Job
// @Router /jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	var req service.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	job, err := c.JobService.UpdateJob(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Updated(ctx, "Job updated successfully", "job", job)
}

// @Summary 上架/下架岗位
// @Tags 岗位管理
// @Security ApiKeyAuth
// @Param id path string true "岗位ID"
// @Router /jobs/{id}/toggle-status [patch]
func (c *JobController) ToggleStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	job, err := c.JobService.ToggleStatus(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	msg := "Job deactivated successfully"
	if job.IsActive {
		msg = "Job activated successfully"
	}
	util.Updated(ctx, msg, "job", job)
}

// @Summary 删除岗位
// @Tags 岗位管理
// @Security ApiKeyAuth
// @Param id path string true "岗位ID"
// @Failure 409 {object} util.ErrorResponse "岗位已有投递"
// @Router /jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.JobService.DeleteJob(ctx.Request.Context(), claims.UserID, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Job deleted successfully")
}

// @Summary 我发布的岗位
// @Tags 岗位管理
// @Security ApiKeyAuth
// @Router /jobs/admin/my-jobs [get]
func (c *JobController) MyJobs(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	jobs, err := c.JobService.MyJobs(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, jobs)
}

// @Summary 岗位统计
// @Tags 岗位管理
// @Security ApiKeyAuth
// @Success 200 {object} service.JobStats
// @Router /jobs/admin/stats [get]
func (c *JobController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	stats, err := c.JobService.Stats(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 岗位投递人列表
// @Tags 岗位管理
// @Security ApiKeyAuth
// @Param jobId path string true "岗位ID"
// @Success 200 {object} service.JobApplicants
// @Router /jobs/admin/{jobId}/applicants [get]
func (c *JobController) Applicants(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.JobService.Applicants(ctx.Request.Context(), claims.UserID, ctx.Param("jobId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
