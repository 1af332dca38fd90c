package controller

import (
	"job_assessment_backend/internal/service"
	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskSubmissionController struct {
	Service *service.TaskSubmissionService
}

func NewTaskSubmissionController(svc *service.TaskSubmissionService) *TaskSubmissionController {
	return &TaskSubmissionController{Service: svc}
}

// Submit godoc
// @Summary 提交答卷
// @Description 选择题精确匹配自动判分，简答题待人工评分；每个分配只能提交一次
// @Tags 任务提交
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitTaskRequest true "答案"
// @Success 201 {object} model.TaskSubmission
// @Failure 403 {object} util.ErrorResponse "不是自己的任务"
// @Failure 409 {object} util.ErrorResponse "已提交"
// @Router /task-submissions/submit [post]
func (c *TaskSubmissionController) Submit(ctx *gin.Context) {
	var req service.SubmitTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	sub, err := c.Service.Submit(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Task submitted successfully", "submission", sub)
}

// @Summary 我的提交
// @Tags 任务提交
// @Security ApiKeyAuth
// @Success 200 {array} service.SubmissionView
// @Router /task-submissions/my-submissions [get]
func (c *TaskSubmissionController) MySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	list, err := c.Service.MySubmissions(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 按用户查询提交
// @Tags 任务提交
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Success 200 {array} service.SubmissionView
// @Router /task-submissions/user/{userId} [get]
func (c *TaskSubmissionController) ByUser(ctx *gin.Context) {
	list, err := c.Service.ByUser(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 提交详情
// @Description 正确答案只对管理员返回
// @Tags 任务提交
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Success 200 {object} service.SubmissionView
// @Router /task-submissions/{id} [get]
func (c *TaskSubmissionController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.Service.Get(ctx.Request.Context(), claims.UserID, util.IsAdmin(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Feedback godoc
// @Summary 评阅提交
// @Description 只能给简答题打分，分值在 0 到题目分值之间；评阅后分配状态变为 Completed
// @Tags 任务提交
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Param body body service.FeedbackRequest true "评语和分数"
// @Success 200 {object} model.TaskSubmission
// @Router /task-submissions/{id}/feedback [put]
func (c *TaskSubmissionController) Feedback(ctx *gin.Context) {
	var req service.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	sub, err := c.Service.Review(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Updated(ctx, "Feedback saved successfully", "submission", sub)
}
