package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"prompt-wizard/internal/apperror"
	"prompt-wizard/internal/model"
)

// CategoryRepository persists categories in SQL.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return apperror.Store("create category", err)
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperror.Store("list categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	switch {
	case err == nil:
		return &category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperror.NotFound("category", id)
	default:
		return nil, apperror.Store("find category", err)
	}
}

// Update replaces the mutable fields of an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.Category{}).Where("id = ?", category.ID).
		Updates(map[string]interface{}{"name": category.Name})
	if res.Error != nil {
		return apperror.Store("update category", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("category", category.ID)
	}
	if err := db.First(category, category.ID).Error; err != nil {
		return apperror.Store("reload category", err)
	}
	return nil
}

// Delete removes the category in one statement; a missing row is NotFound.
// Prompts referencing the category are left untouched.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return apperror.Store("delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("category", id)
	}
	return nil
}
