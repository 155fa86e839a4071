package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"prompt-wizard/internal/repository"
)

type fixture struct {
	categories *CategoryService
	prompts    *PromptService
	reports    *ReportService
}

func backends() map[string]func(t *testing.T) (CategoryStore, PromptStore) {
	return map[string]func(t *testing.T) (CategoryStore, PromptStore){
		"memory": func(t *testing.T) (CategoryStore, PromptStore) {
			return repository.NewMemoryCategoryRepository(), repository.NewMemoryPromptRepository()
		},
		"sqlite": func(t *testing.T) (CategoryStore, PromptStore) {
			t.Helper()
			db, err := repository.NewDB(filepath.Join(t.TempDir(), "prompts.db"))
			require.NoError(t, err)
			t.Cleanup(func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			})
			return repository.NewCategoryRepository(db), repository.NewPromptRepository(db)
		},
	}
}

func newFixture(t *testing.T, newStores func(t *testing.T) (CategoryStore, PromptStore), strict bool) fixture {
	t.Helper()
	categoryRepo, promptRepo := newStores(t)
	return fixture{
		categories: NewCategoryService(categoryRepo),
		prompts:    NewPromptService(promptRepo, categoryRepo, strict),
		reports:    NewReportService(promptRepo, categoryRepo),
	}
}

func uintPtr(v uint) *uint { return &v }

func promptNames(t *testing.T, f fixture, categoryID *uint) []string {
	t.Helper()
	prompts, err := f.prompts.List(context.Background(), categoryID)
	require.NoError(t, err)
	names := make([]string, 0, len(prompts))
	for _, p := range prompts {
		names = append(names, p.Name)
	}
	return names
}
