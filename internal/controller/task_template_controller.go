package controller

import (
	"fmt"
	"io"
	"net/http"

	"job_assessment_backend/internal/service"
	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskTemplateController struct {
	Service *service.TaskTemplateService
}

func NewTaskTemplateController(svc *service.TaskTemplateService) *TaskTemplateController {
	return &TaskTemplateController{Service: svc}
}

// Create godoc
// @Summary 创建任务模板
// @Description 题目类型为 mcq 时至少两个选项且正确答案必须是其中之一；分值缺省为 1
// @Tags 任务模板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TaskTemplateRequest true "模板"
// @Success 201 {object} model.TaskTemplate
// @Failure 400 {object} util.ErrorResponse "题目校验失败"
// @Failure 409 {object} util.ErrorResponse "任务编号已存在"
// @Router /task-templates/create [post]
func (c *TaskTemplateController) Create(ctx *gin.Context) {
	var req service.TaskTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	tpl, err := c.Service.Create(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Task template created successfully", "taskTemplate", tpl)
}

// @Summary 全部任务模板
// @Tags 任务模板
// @Security ApiKeyAuth
// @Success 200 {array} model.TaskTemplate
// @Router /task-templates/all [get]
func (c *TaskTemplateController) List(ctx *gin.Context) {
	list, err := c.Service.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 任务编号下拉列表
// @Tags 任务模板
// @Security ApiKeyAuth
// @Success 200 {array} model.TemplateNumber
// @Router /task-templates/numbers [get]
func (c *TaskTemplateController) Numbers(ctx *gin.Context) {
	list, err := c.Service.Numbers(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 任务模板详情
// @Tags 任务模板
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Success 200 {object} model.TaskTemplate
// @Router /task-templates/{id} [get]
func (c *TaskTemplateController) Get(ctx *gin.Context) {
	tpl, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tpl)
}

// @Summary 修改任务模板
// @Description 题目整体替换
// @Tags 任务模板
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Param body body service.TaskTemplateRequest true "模板"
// @Success 200 {object} model.TaskTemplate
// @Failure 409 {object} util.ErrorResponse "模板已被分配"
// @Router /task-templates/{id} [put]
func (c *TaskTemplateController) Update(ctx *gin.Context) {
	var req service.TaskTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	tpl, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Updated(ctx, "Task template updated successfully", "taskTemplate", tpl)
}

// @Summary 删除任务模板
// @Tags 任务模板
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Failure 409 {object} util.ErrorResponse "模板已被分配"
// @Router /task-templates/{id} [delete]
func (c *TaskTemplateController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Message(ctx, "Task template deleted successfully")
}

// UploadResource godoc
// @Summary 上传任务资料
// @Description 支持 pdf、图片、zip、纯文本，最大 20MB
// @Tags 任务模板
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Param file formData file true "资料文件"
// @Success 200 {object} model.TaskTemplate
// @Router /task-templates/{id}/resource [post]
func (c *TaskTemplateController) UploadResource(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "No file uploaded")
		return
	}
	if fileHeader.Size > util.MaxResourceSize {
		util.BadRequest(ctx, fmt.Sprintf("File too large, max %dMB", util.MaxResourceSize>>20))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	defer file.Close()

	// 按内容识别类型，不信任客户端声明
	contentType, err := util.ValidateMimeType(file, util.AllowedResourceTypes)
	if err != nil {
		util.Error(ctx, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		util.InternalServerError(ctx, err)
		return
	}

	tpl, err := c.Service.UploadResource(ctx.Request.Context(), ctx.Param("id"),
		fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Updated(ctx, "Resource uploaded successfully", "taskTemplate", tpl)
}
