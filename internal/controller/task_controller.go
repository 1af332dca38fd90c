package controller

import (
	"job_assessment_backend/internal/service"
	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TaskController 旧版任务接口，保留给还在使用 /api/tasks 的前端
type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// @Summary 我的任务
// @Tags 任务(旧)
// @Security ApiKeyAuth
// @Success 200 {array} model.Task
// @Router /tasks/my-tasks [get]
func (c *TaskController) MyTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	tasks, err := c.TaskService.MyTasks(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// @Summary 任务详情
// @Tags 任务(旧)
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Success 200 {object} model.Task
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	task, err := c.TaskService.Get(ctx.Request.Context(), claims.UserID, util.IsAdmin(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, task)
}

// @Summary 更新任务状态
// @Description 状态改为 Submitted 时记录提交时间
// @Tags 任务(旧)
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Param body body service.UpdateTaskStatusRequest true "状态"
// @Router /tasks/{id}/status [put]
func (c *TaskController) UpdateStatus(ctx *gin.Context) {
	var req service.UpdateTaskStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	task, err := c.TaskService.UpdateStatus(ctx.Request.Context(), claims.UserID, util.IsAdmin(ctx), ctx.Param("id"), req.Status)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Updated(ctx, "Task status updated successfully", "task", task)
}

// @Summary 创建任务
// @Tags 任务(旧)
// @Accept json
// @Security ApiKeyAuth
// @Param body body service.CreateTaskRequest true "任务信息"
// @Success 201 {object} model.Task
// @Router /tasks/create [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	var req service.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	task, err := c.TaskService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Task created successfully", "task", task)
}

// @Summary 全部任务
// @Tags 任务(旧)
// @Security ApiKeyAuth
// @Router /tasks/all [get]
func (c *TaskController) ListAll(ctx *gin.Context) {
	tasks, err := c.TaskService.ListAll(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// @Summary 按投递查询任务
// @Tags 任务(旧)
// @Security ApiKeyAuth
// @Param applicationId path string true "投递ID"
// @Router /tasks/application/{applicationId} [get]
func (c *TaskController) ByApplication(ctx *gin.Context) {
	tasks, err := c.TaskService.ByApplication(ctx.Request.Context(), ctx.Param("applicationId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// @Summary 修改任务
// @Tags 任务(旧)
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Param body body service.UpdateTaskRequest true "需要修改的字段"
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	var req service.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	task, err := c.TaskService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Updated(ctx, "Task updated successfully", "task", task)
}

// @Summary 删除任务
// @Tags 任务(旧)
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	if err := c.TaskService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Task deleted successfully")
}
