package service

import (
	"errors"
	"strings"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"

	"gorm.io/gorm"
)

// Clock 便于测试注入时间
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// notFound 把 gorm.ErrRecordNotFound 换成对应资源的 404
func notFound(err error, nf *util.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// cleanEducation 丢弃没有学位或学校的条目
func cleanEducation(items []model.Education) []model.Education {
	out := make([]model.Education, 0, len(items))
	for _, e := range items {
		e.Degree = strings.TrimSpace(e.Degree)
		e.College = strings.TrimSpace(e.College)
		if e.Degree == "" || e.College == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// cleanExperience 丢弃没有公司或职位的条目
func cleanExperience(items []model.Experience) []model.Experience {
	out := make([]model.Experience, 0, len(items))
	for _, e := range items {
		e.Company = strings.TrimSpace(e.Company)
		e.Position = strings.TrimSpace(e.Position)
		if e.Company == "" || e.Position == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
