package service

import (
	"context"
	"strings"

	"prompt-wizard/internal/apperror"
	"prompt-wizard/internal/model"
)

// CategoryService owns the category lifecycle.
type CategoryService struct {
	repo CategoryStore
}

func NewCategoryService(repo CategoryStore) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("name", "must not be empty")
	}

	category := model.Category{Name: name}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Rename replaces the category name.
func (s *CategoryService) Rename(ctx context.Context, id uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("name", "must not be empty")
	}

	category := model.Category{ID: id, Name: name}
	if err := s.repo.Update(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes the category. Prompts that reference it are kept and
// become orphans; deleting an already deleted id is NotFound.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
