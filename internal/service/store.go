package service

import (
	"context"

	"prompt-wizard/internal/model"
)

// CategoryStore persists categories. Implementations return
// apperror.NotFound for missing ids and apperror.Store for backend
// failures; Delete checks existence and removes in one atomic step.
type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uint) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint) error
}

// PromptStore persists prompts under the same contract as CategoryStore.
// List filters by exact category id when categoryID is non-nil.
type PromptStore interface {
	Create(ctx context.Context, prompt *model.Prompt) error
	List(ctx context.Context, categoryID *uint) ([]model.Prompt, error)
	GetByID(ctx context.Context, id uint) (*model.Prompt, error)
	Update(ctx context.Context, prompt *model.Prompt) error
	Delete(ctx context.Context, id uint) error
}
