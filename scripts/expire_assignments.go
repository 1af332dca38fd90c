// 手动触发超时任务清扫脚本
//
// 主应用会按 assessment.sweep_interval_seconds 周期执行同样的清扫。
// 此脚本用于关闭了后台清扫的部署，或停机一段时间后手动补跑。
//
// 用法: go run scripts/expire_assignments.go [-grace 5m]

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"job_assessment_backend/internal/config"
	"job_assessment_backend/internal/repository"
	"job_assessment_backend/internal/service"
	"job_assessment_backend/pkg/database"
	"job_assessment_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type sweepReport struct {
	RanAt         time.Time     `yaml:"ran_at"`
	Grace         time.Duration `yaml:"grace"`
	AutoSubmitted int           `yaml:"auto_submitted"`
	Error         string        `yaml:"error,omitempty"`
}

func main() {
	grace := flag.Duration("grace", -1, "覆盖配置中的宽限时间，例如 0s、10m")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	users := repository.NewUserRepository(db)
	apps := repository.NewApplicationRepository(db)
	templates := repository.NewTaskTemplateRepository(db)
	assignments := repository.NewTaskAssignmentRepository(db)
	submissions := repository.NewTaskSubmissionRepository(db)

	g := cfg.Assessment.Grace()
	if *grace >= 0 {
		g = *grace
	}

	svc := service.NewTaskAssignmentService(assignments, apps, templates, users, cfg.Assessment.DefaultDeadlineHours, g)
	svc.Submitter = service.NewTaskSubmissionService(submissions, assignments, templates, users)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report := sweepReport{RanAt: time.Now().UTC(), Grace: g}
	n, err := svc.SweepExpired(ctx)
	report.AutoSubmitted = n
	if err != nil {
		report.Error = err.Error()
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.Encode(report)
	enc.Close()

	if err != nil {
		os.Exit(1)
	}
}
