package repository

import (
	"context"
	"errors"

	"job_assessment_backend/internal/model"

	"gorm.io/gorm"
)

// ErrAssignmentClosed 分配已提交或已完成，不能再写入提交
var ErrAssignmentClosed = errors.New("assignment is no longer open")

type TaskSubmissionRepository struct {
	DB *gorm.DB
}

func NewTaskSubmissionRepository(db *gorm.DB) *TaskSubmissionRepository {
	return &TaskSubmissionRepository{DB: db}
}

func preloadAnswers(db *gorm.DB) *gorm.DB {
	return db.Preload("Answers")
}

// CreateForAssignment 在一个事务里把分配从可作答状态切到 Submitted 并写入提交。
// 条件更新没有命中时返回 ErrAssignmentClosed，唯一索引冲突时返回 gorm.ErrDuplicatedKey
func (r *TaskSubmissionRepository) CreateForAssignment(ctx context.Context, sub *model.TaskSubmission) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TaskAssignment{}).
			Where("id = ? AND status IN ?", sub.TaskAssignmentID, openStatuses).
			Updates(map[string]interface{}{
				"status":       model.TaskSubmitted,
				"submitted_at": sub.SubmittedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAssignmentClosed
		}
		return tx.Create(sub).Error
	})
}

func (r *TaskSubmissionRepository) FindByID(ctx context.Context, id string) (*model.TaskSubmission, error) {
	var sub model.TaskSubmission
	if err := preloadAnswers(r.DB.WithContext(ctx)).Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *TaskSubmissionRepository) FindByAssignment(ctx context.Context, assignmentID string) (*model.TaskSubmission, error) {
	var sub model.TaskSubmission
	err := preloadAnswers(r.DB.WithContext(ctx)).Where("task_assignment_id = ?", assignmentID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *TaskSubmissionRepository) FindByUser(ctx context.Context, userID string) ([]model.TaskSubmission, error) {
	var list []model.TaskSubmission
	err := preloadAnswers(r.DB.WithContext(ctx)).Where("user_id = ?", userID).Order("submitted_at DESC").Find(&list).Error
	return list, err
}

// SaveReview 写回人工评分与反馈，并把分配标记为 Completed
func (r *TaskSubmissionRepository) SaveReview(ctx context.Context, sub *model.TaskSubmission) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range sub.Answers {
			a := &sub.Answers[i]
			if err := tx.Model(&model.TaskAnswer{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
				"points_earned":  a.PointsEarned,
				"grading_status": a.GradingStatus,
			}).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.TaskSubmission{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
			"total_points": sub.TotalPoints,
			"feedback":     sub.Feedback,
			"reviewed_at":  sub.ReviewedAt,
			"reviewed_by":  sub.ReviewedBy,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&model.TaskAssignment{}).
			Where("id = ?", sub.TaskAssignmentID).
			Update("status", model.TaskCompleted).
			Error
	})
}
