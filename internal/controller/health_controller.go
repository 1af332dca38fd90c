package controller

import (
	"context"
	"net/http"
	"time"

	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type CachePinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB    Pinger
	Cache CachePinger
}

func NewHealthController(db Pinger, cache CachePinger) *HealthController {
	return &HealthController{DB: db, Cache: cache}
}

// Index godoc
// @Summary 接口目录
// @Tags 系统
// @Produce json
// @Router / [get]
func (c *HealthController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": util.APIServiceName,
		"version": util.APIVersion,
		"endpoints": gin.H{
			"auth":            "/api/auth",
			"users":           "/api/users",
			"jobs":            "/api/jobs",
			"applications":    "/api/applications",
			"tasks":           "/api/tasks",
			"taskTemplates":   "/api/task-templates",
			"taskAssignments": "/api/task-assignments",
			"taskSubmissions": "/api/task-submissions",
			"health":          "/api/health",
		},
	})
}

// HealthCheck godoc
// @Summary 健康检查
// @Description 数据库不可用时返回 503，缓存不可用只降级
// @Tags 系统
// @Produce json
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	cacheStatus := "down"
	if c.Cache != nil && c.Cache.Ping(pingCtx) == nil {
		cacheStatus = "up"
	}

	if c.DB == nil || c.DB.PingContext(pingCtx) != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"message":   "Database unavailable",
			"timestamp": time.Now().UTC(),
			"components": gin.H{
				"database": "down",
				"cache":    cacheStatus,
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Server is running",
		"timestamp": time.Now().UTC(),
		"components": gin.H{
			"database": "up",
			"cache":    cacheStatus,
		},
	})
}
