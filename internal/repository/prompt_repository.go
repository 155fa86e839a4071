package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"prompt-wizard/internal/apperror"
	"prompt-wizard/internal/model"
)

// PromptRepository handles CRUD for prompts.
type PromptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Create(ctx context.Context, prompt *model.Prompt) error {
	if err := r.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return apperror.Store("create prompt", err)
	}
	return nil
}

// List returns prompts in id order, restricted to one category when
// categoryID is non-nil.
func (r *PromptRepository) List(ctx context.Context, categoryID *uint) ([]model.Prompt, error) {
	prompts := []model.Prompt{}
	q := r.db.WithContext(ctx).Order("id ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.Find(&prompts).Error; err != nil {
		return nil, apperror.Store("list prompts", err)
	}
	return prompts, nil
}

func (r *PromptRepository) GetByID(ctx context.Context, id uint) (*model.Prompt, error) {
	var prompt model.Prompt
	err := r.db.WithContext(ctx).First(&prompt, id).Error
	switch {
	case err == nil:
		return &prompt, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperror.NotFound("prompt", id)
	default:
		return nil, apperror.Store("find prompt", err)
	}
}

// Update overwrites name, contents and category_id. A nil CategoryID is
// written as NULL.
func (r *PromptRepository) Update(ctx context.Context, prompt *model.Prompt) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.Prompt{}).Where("id = ?", prompt.ID).
		Updates(map[string]interface{}{
			"name":        prompt.Name,
			"contents":    prompt.Contents,
			"category_id": prompt.CategoryID,
		})
	if res.Error != nil {
		return apperror.Store("update prompt", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("prompt", prompt.ID)
	}
	if err := db.First(prompt, prompt.ID).Error; err != nil {
		return apperror.Store("reload prompt", err)
	}
	return nil
}

func (r *PromptRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Prompt{}, id)
	if res.Error != nil {
		return apperror.Store("delete prompt", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("prompt", id)
	}
	return nil
}
