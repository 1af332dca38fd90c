package controller

import (
	"job_assessment_backend/internal/service"
	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskAssignmentController struct {
	Service *service.TaskAssignmentService
}

func NewTaskAssignmentController(svc *service.TaskAssignmentService) *TaskAssignmentController {
	return &TaskAssignmentController{Service: svc}
}

// Assign godoc
// @Summary 分配任务
// @Description 按任务编号找到模板并分配给投递人，deadline 单位为小时
// @Tags 任务分配
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssignTaskRequest true "分配信息"
// @Success 201 {object} model.TaskAssignment
// @Failure 404 {object} util.ErrorResponse "投递或模板不存在"
// @Router /task-assignments/assign [post]
func (c *TaskAssignmentController) Assign(ctx *gin.Context) {
	var req service.AssignTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	a, err := c.Service.Assign(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Task assigned successfully", "taskAssignment", a)
}

// MyAssignments godoc
// @Summary 我的任务
// @Description 模板题目不含正确答案，附带剩余秒数
// @Tags 任务分配
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} service.AssignmentView
// @Router /task-assignments/my-assignments [get]
func (c *TaskAssignmentController) MyAssignments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	list, err := c.Service.MyAssignments(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 开始作答
// @Description 仅 Pending 状态会变为 In Progress，重复调用不改变开始时间
// @Tags 任务分配
// @Security ApiKeyAuth
// @Param id path string true "分配ID"
// @Success 200 {object} model.TaskAssignment
// @Router /task-assignments/{id}/start [put]
func (c *TaskAssignmentController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	a, err := c.Service.Start(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Updated(ctx, "Task started", "taskAssignment", a)
}

// @Summary 全部任务分配
// @Tags 任务分配
// @Security ApiKeyAuth
// @Success 200 {array} service.AssignmentView
// @Router /task-assignments/all [get]
func (c *TaskAssignmentController) ListAll(ctx *gin.Context) {
	list, err := c.Service.ListAll(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 按投递查询任务分配
// @Tags 任务分配
// @Security ApiKeyAuth
// @Param applicationId path string true "投递ID"
// @Router /task-assignments/application/{applicationId} [get]
func (c *TaskAssignmentController) ByApplication(ctx *gin.Context) {
	list, err := c.Service.ByApplication(ctx.Request.Context(), ctx.Param("applicationId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 任务分配详情
// @Tags 任务分配
// @Security ApiKeyAuth
// @Param id path string true "分配ID"
// @Success 200 {object} service.AssignmentView
// @Router /task-assignments/{id} [get]
func (c *TaskAssignmentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.Service.Get(ctx.Request.Context(), claims.UserID, util.IsAdmin(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 删除任务分配
// @Tags 任务分配
// @Security ApiKeyAuth
// @Param id path string true "分配ID"
// @Router /task-assignments/{id} [delete]
func (c *TaskAssignmentController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Task assignment deleted successfully")
}
