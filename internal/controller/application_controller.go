package controller

import (
	"job_assessment_backend/internal/service"
	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	Service *service.ApplicationService
}

func NewApplicationController(svc *service.ApplicationService) *ApplicationController {
	return &ApplicationController{Service: svc}
}

// @Summary 提交投递
// @Description 未提供的 skills/education/experience 从当前资料复制，作为投递时刻的快照保存
// @Tags 投递
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitApplicationRequest true "投递信息"
// @Success 201 {object} model.Application
// @Failure 409 {object} util.ErrorResponse "重复投递"
// @Router /applications/submit [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	app, err := c.Service.Submit(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Application submitted successfully", "application", app)
}

// @Summary 我的投递
// @Tags 投递
// @Security ApiKeyAuth
// @Success 200 {array} model.Application
// @Router /applications/my-applications [get]
func (c *ApplicationController) MyApplications(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	apps, err := c.Service.MyApplications(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, apps)
}

// @Summary 全部投递
// @Tags 投递管理
// @Security ApiKeyAuth
// @Success 200 {array} model.Application
// @Router /applications/all [get]
func (c *ApplicationController) ListAll(ctx *gin.Context) {
	apps, err := c.Service.ListAll(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, apps)
}

// @Summary 投递统计
// @Tags 投递管理
// @Security ApiKeyAuth
// @Success 200 {object} service.ApplicationStats
// @Router /applications/stats [get]
func (c *ApplicationController) Stats(ctx *gin.Context) {
	stats, err := c.Service.Stats(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 投递详情
// @Tags 投递
// @Security ApiKeyAuth
// @Param id path string true "投递ID"
// @Success 200 {object} model.Application
// @Router /applications/{id} [get]
func (c *ApplicationController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	app, err := c.Service.Get(ctx.Request.Context(), claims.UserID, util.IsAdmin(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, app)
}

// @Summary 修改投递状态
// @Tags 投递管理
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "投递ID"
// @Param body body service.UpdateApplicationStatusRequest true "状态"
// @Router /applications/{id}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	var req service.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	app, err := c.Service.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Updated(ctx, "Application status updated successfully", "application", app)
}

// @Summary 删除投递
// @Tags 投递管理
// @Security ApiKeyAuth
// @Param id path string true "投递ID"
// @Failure 409 {object} util.ErrorResponse "投递已关联任务"
// @Router /applications/{id} [delete]
func (c *ApplicationController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Application deleted successfully")
}
