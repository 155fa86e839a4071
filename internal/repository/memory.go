package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"prompt-wizard/internal/apperror"
	"prompt-wizard/internal/model"
)

// MemoryCategoryRepository keeps categories in process memory. Ids are
// allocated from a counter that never goes backwards, so a deleted id is
// never handed out again.
type MemoryCategoryRepository struct {
	mu     sync.Mutex
	lastID uint
	rows   map[uint]model.Category
}

func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{rows: make(map[uint]model.Category)}
}

func (r *MemoryCategoryRepository) Create(_ context.Context, category *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := time.Now()
	category.ID = r.lastID
	category.CreatedAt = now
	category.UpdatedAt = now
	r.rows[category.ID] = *category
	return nil
}

func (r *MemoryCategoryRepository) List(_ context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories := make([]model.Category, 0, len(r.rows))
	for _, c := range r.rows {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *MemoryCategoryRepository) GetByID(_ context.Context, id uint) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.rows[id]
	if !ok {
		return nil, apperror.NotFound("category", id)
	}
	return &category, nil
}

func (r *MemoryCategoryRepository) Update(_ context.Context, category *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[category.ID]
	if !ok {
		return apperror.NotFound("category", category.ID)
	}
	existing.Name = category.Name
	existing.UpdatedAt = time.Now()
	r.rows[category.ID] = existing
	*category = existing
	return nil
}

func (r *MemoryCategoryRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return apperror.NotFound("category", id)
	}
	delete(r.rows, id)
	return nil
}

// MemoryPromptRepository is the in-memory counterpart of PromptRepository.
type MemoryPromptRepository struct {
	mu     sync.Mutex
	lastID uint
	rows   map[uint]model.Prompt
}

func NewMemoryPromptRepository() *MemoryPromptRepository {
	return &MemoryPromptRepository{rows: make(map[uint]model.Prompt)}
}

func (r *MemoryPromptRepository) Create(_ context.Context, prompt *model.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := time.Now()
	prompt.ID = r.lastID
	prompt.CategoryID = copyID(prompt.CategoryID)
	prompt.CreatedAt = now
	prompt.UpdatedAt = now
	r.rows[prompt.ID] = *prompt
	return nil
}

func (r *MemoryPromptRepository) List(_ context.Context, categoryID *uint) ([]model.Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prompts := make([]model.Prompt, 0, len(r.rows))
	for _, p := range r.rows {
		if categoryID != nil && !p.InCategory(*categoryID) {
			continue
		}
		p.CategoryID = copyID(p.CategoryID)
		prompts = append(prompts, p)
	}
	sort.Slice(prompts, func(i, j int) bool { return prompts[i].ID < prompts[j].ID })
	return prompts, nil
}

func (r *MemoryPromptRepository) GetByID(_ context.Context, id uint) (*model.Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prompt, ok := r.rows[id]
	if !ok {
		return nil, apperror.NotFound("prompt", id)
	}
	prompt.CategoryID = copyID(prompt.CategoryID)
	return &prompt, nil
}

func (r *MemoryPromptRepository) Update(_ context.Context, prompt *model.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[prompt.ID]
	if !ok {
		return apperror.NotFound("prompt", prompt.ID)
	}
	existing.Name = prompt.Name
	existing.Contents = prompt.Contents
	existing.CategoryID = copyID(prompt.CategoryID)
	existing.UpdatedAt = time.Now()
	r.rows[prompt.ID] = existing

	*prompt = existing
	prompt.CategoryID = copyID(existing.CategoryID)
	return nil
}

func (r *MemoryPromptRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return apperror.NotFound("prompt", id)
	}
	delete(r.rows, id)
	return nil
}

// copyID detaches stored rows from caller-owned pointers.
func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
