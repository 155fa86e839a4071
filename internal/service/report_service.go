package service

import (
	"context"
	"fmt"

	"prompt-wizard/internal/model"
)

// Summary counts the catalog contents at one point in time.
type Summary struct {
	Categories    int
	Prompts       int
	Uncategorized int
	Orphaned      int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d categories, %d prompts (%d uncategorized, %d orphaned)",
		s.Categories, s.Prompts, s.Uncategorized, s.Orphaned)
}

// ReportService resolves prompt category references against the
// categories that currently exist.
type ReportService struct {
	promptRepo   PromptStore
	categoryRepo CategoryStore
}

func NewReportService(promptRepo PromptStore, categoryRepo CategoryStore) *ReportService {
	return &ReportService{promptRepo: promptRepo, categoryRepo: categoryRepo}
}

// Orphans returns prompts whose category id names no existing category.
func (s *ReportService) Orphans(ctx context.Context) ([]model.Prompt, error) {
	prompts, known, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	orphans := []model.Prompt{}
	for _, p := range prompts {
		if isOrphan(p, known) {
			orphans = append(orphans, p)
		}
	}
	return orphans, nil
}

func (s *ReportService) Summary(ctx context.Context) (Summary, error) {
	prompts, known, err := s.snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Categories: len(known), Prompts: len(prompts)}
	for _, p := range prompts {
		switch {
		case p.CategoryID == nil:
			summary.Uncategorized++
		case isOrphan(p, known):
			summary.Orphaned++
		}
	}
	return summary, nil
}

func (s *ReportService) snapshot(ctx context.Context) ([]model.Prompt, map[uint]struct{}, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	known := make(map[uint]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}

	prompts, err := s.promptRepo.List(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	return prompts, known, nil
}

func isOrphan(p model.Prompt, known map[uint]struct{}) bool {
	if p.CategoryID == nil {
		return false
	}
	_, ok := known[*p.CategoryID]
	return !ok
}
