package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"job_assessment_backend/internal/config"
	"job_assessment_backend/internal/controller"
	"job_assessment_backend/internal/repository"
	"job_assessment_backend/internal/service"
	"job_assessment_backend/pkg/cache"
	"job_assessment_backend/pkg/configwatcher"
	"job_assessment_backend/pkg/database"
	"job_assessment_backend/pkg/logger"
	"job_assessment_backend/pkg/monitoring"
	"job_assessment_backend/pkg/security"
	"job_assessment_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Cache           *cache.Cache
	services        *services
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	stop            chan struct{}
}

type repositories struct {
	user       *repository.UserRepository
	job        *repository.JobRepository
	app        *repository.ApplicationRepository
	task       *repository.TaskRepository
	template   *repository.TaskTemplateRepository
	assignment *repository.TaskAssignmentRepository
	submission *repository.TaskSubmissionRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	storage    *service.StorageService
	job        *service.JobService
	app        *service.ApplicationService
	task       *service.TaskService
	template   *service.TaskTemplateService
	assignment *service.TaskAssignmentService
	submission *service.TaskSubmissionService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	job        *controller.JobController
	app        *controller.ApplicationController
	task       *controller.TaskController
	template   *controller.TaskTemplateController
	assignment *controller.TaskAssignmentController
	submission *controller.TaskSubmissionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		job:        repository.NewJobRepository(db),
		app:        repository.NewApplicationRepository(db),
		task:       repository.NewTaskRepository(db),
		template:   repository.NewTaskTemplateRepository(db),
		assignment: repository.NewTaskAssignmentRepository(db),
		submission: repository.NewTaskSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(context.Background(), &cfg.Storage)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.job = service.NewJobService(repos.job, repos.app, repos.user, a.Cache, cfg.Cache.JobTTL())
	s.app = service.NewApplicationService(repos.app, repos.job, repos.user, a.Cache, repos.assignment, repos.task)
	s.task = service.NewTaskService(repos.task, repos.app)
	s.template = service.NewTaskTemplateService(repos.template, repos.assignment, s.storage)
	s.submission = service.NewTaskSubmissionService(repos.submission, repos.assignment, repos.template, repos.user)
	s.assignment = service.NewTaskAssignmentService(
		repos.assignment,
		repos.app,
		repos.template,
		repos.user,
		cfg.Assessment.DefaultDeadlineHours,
		cfg.Assessment.Grace(),
	)
	// 超时清扫通过提交服务自动交卷
	s.assignment.Submitter = s.submission

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	var pinger controller.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}

	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		job:        controller.NewJobController(s.job),
		app:        controller.NewApplicationController(s.app),
		task:       controller.NewTaskController(s.task),
		template:   controller.NewTaskTemplateController(s.template),
		assignment: controller.NewTaskAssignmentController(s.assignment),
		submission: controller.NewTaskSubmissionController(s.submission),
		health:     controller.NewHealthController(pinger, a.Cache),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	go a.limiter.Cleanup(a.stop)
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	if !cfg.Assessment.SweepEnabled {
		logger.Log.Info("Assignment sweep disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(cfg.Assessment.SweepInterval())
		defer ticker.Stop()
		for {
			select {
			case <-a.stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				n, err := s.assignment.SweepExpired(ctx)
				cancel()
				if err != nil {
					logger.Log.Error("assignment sweep error", zap.Error(err))
				} else if n > 0 {
					logger.Log.Info("expired assignments auto-submitted", zap.Int("count", n))
				}
			}
		}
	}()
}

func (a *App) watchConfig() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.limiter.Update(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.assignment.SetGrace(cfg.Assessment.Grace())
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-a.stop
		cancel()
	}()

	go func() {
		err := configwatcher.WatchConfig(ctx, filepath.Join(configDir, "config.yaml"), func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
			logger.Log.Info("Configuration reloaded")
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		stop:   make(chan struct{}),
	}
	if cfg.MigrateOnly {
		return app
	}

	// Redis 不可用时缓存降级为直连数据库
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb
	app.Cache = cache.New(rdb, cfg.Cache.JobTTL())

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("job-assessment", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	app.registerRoutes(router, controllers, services)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, cfg)
	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// 停止清扫、限流清理和配置监听
	close(a.stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
