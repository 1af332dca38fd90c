package controller

import (
	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/service"
	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

func (c *AuthController) signup(ctx *gin.Context, role model.UserRole) {
	var req service.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	result, err := c.AuthService.Signup(ctx.Request.Context(), role, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"message": "User registered successfully",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (c *AuthController) login(ctx *gin.Context, role model.UserRole) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.InvalidBody(ctx, err)
		return
	}

	result, err := c.AuthService.Login(ctx.Request.Context(), role, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// StudentSignup godoc
// @Summary 学生注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.SignupRequest true "注册信息"
// @Success 201 {object} service.AuthResult
// @Failure 400 {object} util.ErrorResponse "请求参数错误"
// @Failure 409 {object} util.ErrorResponse "邮箱已被注册"
// @Router /auth/student/signup [post]
func (c *AuthController) StudentSignup(ctx *gin.Context) {
	c.signup(ctx, model.RoleStudent)
}

// AdminSignup godoc
// @Summary 管理员注册
// @Description 配置了 admin_signup_key 时必须提供 adminKey
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.SignupRequest true "注册信息"
// @Success 201 {object} service.AuthResult
// @Failure 403 {object} util.ErrorResponse "adminKey 错误"
// @Failure 409 {object} util.ErrorResponse "邮箱已被注册"
// @Router /auth/admin/signup [post]
func (c *AuthController) AdminSignup(ctx *gin.Context) {
	c.signup(ctx, model.RoleAdmin)
}

// StudentLogin godoc
// @Summary 学生登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "登录信息"
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} util.ErrorResponse "邮箱或密码错误"
// @Failure 403 {object} util.ErrorResponse "账号不是学生"
// @Router /auth/student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	c.login(ctx, model.RoleStudent)
}

// AdminLogin godoc
// @Summary 管理员登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "登录信息"
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} util.ErrorResponse "邮箱或密码错误"
// @Failure 403 {object} util.ErrorResponse "账号不是管理员"
// @Router /auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	c.login(ctx, model.RoleAdmin)
}
