package service

import (
	"context"
	"strings"

	"prompt-wizard/internal/apperror"
	"prompt-wizard/internal/model"
)

// PromptInput carries the mutable fields of a prompt. Update treats it as a
// full replacement: a nil CategoryID uncategorizes the prompt.
type PromptInput struct {
	Name       string
	Contents   string
	CategoryID *uint
}

// PromptService wraps prompt-related business logic.
type PromptService struct {
	promptRepo   PromptStore
	categoryRepo CategoryStore
	strictRefs   bool
}

// NewPromptService builds the service. With strictRefs set, a category id
// that does not resolve to an existing category is rejected on create and
// update; otherwise it is stored as given.
func NewPromptService(promptRepo PromptStore, categoryRepo CategoryStore, strictRefs bool) *PromptService {
	return &PromptService{promptRepo: promptRepo, categoryRepo: categoryRepo, strictRefs: strictRefs}
}

func (s *PromptService) Create(ctx context.Context, input PromptInput) (*model.Prompt, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	prompt := model.Prompt{
		Name:       input.Name,
		Contents:   input.Contents,
		CategoryID: input.CategoryID,
	}
	if err := s.promptRepo.Create(ctx, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// List returns every prompt, or only those whose category id equals
// categoryID when it is non-nil.
func (s *PromptService) List(ctx context.Context, categoryID *uint) ([]model.Prompt, error) {
	return s.promptRepo.List(ctx, categoryID)
}

func (s *PromptService) Get(ctx context.Context, id uint) (*model.Prompt, error) {
	return s.promptRepo.GetByID(ctx, id)
}

// Update replaces name, contents and category of an existing prompt.
func (s *PromptService) Update(ctx context.Context, id uint, input PromptInput) (*model.Prompt, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	prompt := model.Prompt{
		ID:         id,
		Name:       input.Name,
		Contents:   input.Contents,
		CategoryID: input.CategoryID,
	}
	if err := s.promptRepo.Update(ctx, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (s *PromptService) Delete(ctx context.Context, id uint) error {
	return s.promptRepo.Delete(ctx, id)
}

func (s *PromptService) validate(ctx context.Context, input PromptInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperror.Validation("name", "must not be empty")
	}
	if strings.TrimSpace(input.Contents) == "" {
		return apperror.Validation("contents", "must not be empty")
	}
	if input.CategoryID == nil {
		return nil
	}
	// Stores allocate ids from 1, so 0 can never name a category.
	if *input.CategoryID == 0 {
		return apperror.Validation("category_id", "must be a positive integer")
	}
	if !s.strictRefs {
		return nil
	}

	_, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
	if apperror.IsNotFound(err) {
		return apperror.Validation("category_id", "unknown category")
	}
	return err
}
