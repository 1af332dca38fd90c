package app

import (
	"job_assessment_backend/docs"
	"job_assessment_backend/internal/middleware"
	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"
	"job_assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/", c.health.Index)

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	auth := middleware.AuthMiddleware(s.auth)
	activity := middleware.ActivityMiddleware(s.user)
	student := middleware.RoleMiddleware(model.RoleStudent)
	admin := middleware.RoleMiddleware(model.RoleAdmin)

	// 1. 认证(无需登录)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/student/signup", c.auth.StudentSignup)
		authGroup.POST("/admin/signup", c.auth.AdminSignup)
		authGroup.POST("/student/login", c.auth.StudentLogin)
		authGroup.POST("/admin/login", c.auth.AdminLogin)
	}

	// 2. 用户
	users := api.Group("/users", auth, activity)
	{
		users.GET("/profile", c.user.GetProfile)
		users.PUT("/profile", c.user.UpdateProfile)
		users.PUT("/change-password", c.user.ChangePassword)
		users.GET("/all", admin, c.user.ListUsers)
		users.DELETE("/:id", admin, c.user.DeleteUser)
	}

	// 3. 岗位：列表和详情公开，其余仅管理员
	jobs := api.Group("/jobs")
	{
		jobs.GET("/all", c.job.ListJobs)

		adminJobs := jobs.Group("", auth, activity, admin)
		adminJobs.POST("/create", c.job.CreateJob)
		adminJobs.GET("/admin/my-jobs", c.job.MyJobs)
		adminJobs.GET("/admin/stats", c.job.Stats)
		adminJobs.GET("/admin/:jobId/applicants", c.job.Applicants)
		adminJobs.PUT("/:id", c.job.UpdateJob)
		adminJobs.PATCH("/:id/toggle-status", c.job.ToggleStatus)
		adminJobs.DELETE("/:id", c.job.DeleteJob)

		jobs.GET("/:id", c.job.GetJob)
	}

	// 4. 投递
	apps := api.Group("/applications", auth, activity)
	{
		apps.POST("/submit", student, c.app.Submit)
		apps.GET("/my-applications", student, c.app.MyApplications)
		apps.GET("/all", admin, c.app.ListAll)
		apps.GET("/stats", admin, c.app.Stats)
		apps.GET("/:id", c.app.Get)
		apps.PUT("/:id/status", admin, c.app.UpdateStatus)
		apps.DELETE("/:id", admin, c.app.Delete)
	}

	// 5. 旧版任务
	tasks := api.Group("/tasks", auth, activity)
	{
		tasks.GET("/my-tasks", c.task.MyTasks)
		tasks.POST("/create", admin, c.task.CreateTask)
		tasks.GET("/all", admin, c.task.ListAll)
		tasks.GET("/application/:applicationId", admin, c.task.ByApplication)
		tasks.GET("/:id", c.task.GetTask)
		tasks.PUT("/:id/status", c.task.UpdateStatus)
		tasks.PUT("/:id", admin, c.task.UpdateTask)
		tasks.DELETE("/:id", admin, c.task.DeleteTask)
	}

	// 6. 任务模板(仅管理员)
	templates := api.Group("/task-templates", auth, activity, admin)
	{
		templates.POST("/create", c.template.Create)
		templates.GET("/all", c.template.List)
		templates.GET("/numbers", c.template.Numbers)
		templates.GET("/:id", c.template.Get)
		templates.PUT("/:id", c.template.Update)
		templates.DELETE("/:id", c.template.Delete)
		templates.POST("/:id/resource", c.template.UploadResource)
	}

	// 7. 任务分配
	assignments := api.Group("/task-assignments", auth, activity)
	{
		assignments.POST("/assign", admin, c.assignment.Assign)
		assignments.GET("/my-assignments", student, c.assignment.MyAssignments)
		assignments.GET("/all", admin, c.assignment.ListAll)
		assignments.GET("/application/:applicationId", admin, c.assignment.ByApplication)
		assignments.PUT("/:id/start", student, c.assignment.Start)
		assignments.GET("/:id", c.assignment.Get)
		assignments.DELETE("/:id", admin, c.assignment.Delete)
	}

	// 8. 任务提交
	submissions := api.Group("/task-submissions", auth, activity)
	{
		submissions.POST("/submit", student, c.submission.Submit)
		submissions.GET("/my-submissions", student, c.submission.MySubmissions)
		submissions.GET("/user/:userId", admin, c.submission.ByUser)
		submissions.GET("/:id", c.submission.Get)
		submissions.PUT("/:id/feedback", admin, c.submission.Feedback)
	}

	router.NoRoute(func(ctx *gin.Context) {
		util.NotFound(ctx, "Route not found")
	})
}
