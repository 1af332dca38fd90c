package repository

import (
	"context"

	"job_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type TaskTemplateRepository struct {
	DB *gorm.DB
}

func NewTaskTemplateRepository(db *gorm.DB) *TaskTemplateRepository {
	return &TaskTemplateRepository{DB: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create 模板和题目一并写入
func (r *TaskTemplateRepository) Create(ctx context.Context, tpl *model.TaskTemplate) error {
	return r.DB.WithContext(ctx).Create(tpl).Error
}

func (r *TaskTemplateRepository) FindByID(ctx context.Context, id string) (*model.TaskTemplate, error) {
	var tpl model.TaskTemplate
	err := r.DB.WithContext(ctx).Preload("Questions", orderedQuestions).Where("id = ?", id).First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *TaskTemplateRepository) FindByNumber(ctx context.Context, taskNumber string) (*model.TaskTemplate, error) {
	var tpl model.TaskTemplate
	err := r.DB.WithContext(ctx).Preload("Questions", orderedQuestions).Where("task_number = ?", taskNumber).First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// FindByIDs 批量查询，结果按 id 建索引
func (r *TaskTemplateRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.TaskTemplate, error) {
	out := make(map[string]*model.TaskTemplate, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var tpls []model.TaskTemplate
	err := r.DB.WithContext(ctx).Preload("Questions", orderedQuestions).Where("id IN ?", ids).Find(&tpls).Error
	if err != nil {
		return nil, err
	}
	for i := range tpls {
		out[tpls[i].ID] = &tpls[i]
	}
	return out, nil
}

func (r *TaskTemplateRepository) List(ctx context.Context) ([]model.TaskTemplate, error) {
	var tpls []model.TaskTemplate
	err := r.DB.WithContext(ctx).Preload("Questions", orderedQuestions).Order("created_at DESC").Find(&tpls).Error
	return tpls, err
}

func (r *TaskTemplateRepository) ListNumbers(ctx context.Context) ([]model.TemplateNumber, error) {
	var rows []model.TemplateNumber
	err := r.DB.WithContext(ctx).Model(&model.TaskTemplate{}).
		Select("id, task_number, title").
		Order("task_number ASC").
		Scan(&rows).Error
	return rows, err
}

// Replace 更新模板字段并整体替换题目列表
func (r *TaskTemplateRepository) Replace(ctx context.Context, tpl *model.TaskTemplate) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(tpl).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", tpl.ID).Delete(&model.TaskQuestion{}).Error; err != nil {
			return err
		}
		for i := range tpl.Questions {
			tpl.Questions[i].TemplateID = tpl.ID
		}
		if len(tpl.Questions) == 0 {
			return nil
		}
		return tx.Create(&tpl.Questions).Error
	})
}

func (r *TaskTemplateRepository) UpdateResourceURL(ctx context.Context, id, url string) error {
	return r.DB.WithContext(ctx).Model(&model.TaskTemplate{}).
		Where("id = ?", id).
		Update("resource_url", url).
		Error
}

func (r *TaskTemplateRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&model.TaskQuestion{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.TaskTemplate{}).Error
	})
}
