package httpapi

import (
	"bytes"
	"context"
	"errors"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"prompt-wizard/internal/apperror"
	"prompt-wizard/internal/model"
	"prompt-wizard/internal/repository"
	"prompt-wizard/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	categoryRepo := repository.NewMemoryCategoryRepository()
	promptRepo := repository.NewMemoryPromptRepository()
	h := NewHandler(
		service.NewCategoryService(categoryRepo),
		service.NewPromptService(promptRepo, categoryRepo, false),
		service.NewReportService(promptRepo, categoryRepo),
	)
	return NewRouter(h, zap.NewNop())
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]map[string]string](t, w)
	return body["error"]["code"]
}

func TestConsoleScenario(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/categories", map[string]string{"name": "Test Category 1"})
	require.Equal(t, http.StatusCreated, w.Code)
	cat1 := decode[model.Category](t, w)
	assert.Equal(t, uint(1), cat1.ID)

	w = do(t, r, http.MethodPost, "/api/prompts", map[string]any{
		"name": "Test Prompt 1", "contents": "This is a test prompt", "category_id": cat1.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	p1 := decode[model.Prompt](t, w)

	w = do(t, r, http.MethodPost, "/api/categories", map[string]string{"name": "Test Category 2"})
	require.Equal(t, http.StatusCreated, w.Code)
	cat2 := decode[model.Category](t, w)

	w = do(t, r, http.MethodPost, "/api/prompts", map[string]any{
		"name": "Test Prompt 2", "contents": "This is another test prompt", "category_id": cat2.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	p2 := decode[model.Prompt](t, w)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/prompts/%d", p2.ID), map[string]any{
		"name": p2.Name, "contents": p2.Contents, "category_id": cat1.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	moved := decode[model.Prompt](t, w)
	require.NotNil(t, moved.CategoryID)
	assert.Equal(t, cat1.ID, *moved.CategoryID)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/prompts?category_id=%d", cat1.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Prompt](t, w), 2)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/prompts/%d", p2.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/prompts?category_id=%d", cat1.ID), nil)
	inCat1 := decode[[]model.Prompt](t, w)
	require.Len(t, inCat1, 1)
	assert.Equal(t, p1.ID, inCat1[0].ID)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat1.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat1.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat2.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = do(t, r, http.MethodGet, "/api/prompts", nil)
	final := decode[[]model.Prompt](t, w)
	require.Len(t, final, 1)
	assert.Equal(t, p1.ID, final[0].ID)

	w = do(t, r, http.MethodGet, "/api/prompts/orphans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orphans := decode[[]model.Prompt](t, w)
	require.Len(t, orphans, 1)
	assert.Equal(t, p1.ID, orphans[0].ID)
}

func TestErrorMapping(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"empty category name", http.MethodPost, "/api/categories", map[string]string{"name": ""}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing prompt contents", http.MethodPost, "/api/prompts", map[string]string{"name": "x"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed id", http.MethodDelete, "/api/prompts/abc", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"zero id", http.MethodGet, "/api/categories/0", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"malformed filter", http.MethodGet, "/api/prompts?category_id=x", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"update missing prompt", http.MethodPut, "/api/prompts/77", map[string]string{"name": "a", "contents": "b"}, http.StatusNotFound, "NOT_FOUND"},
		{"get missing prompt", http.MethodGet, "/api/prompts/77", nil, http.StatusNotFound, "NOT_FOUND"},
		{"rename missing category", http.MethodPut, "/api/categories/77", map[string]string{"name": "a"}, http.StatusNotFound, "NOT_FOUND"},
		{"zero category on create", http.MethodPost, "/api/prompts", map[string]any{"name": "a", "contents": "b", "category_id": 0}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"no body", http.MethodPost, "/api/prompts", nil, http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestCategoryRenameAndGet(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/categories", map[string]string{"name": "Draft"})
	require.Equal(t, http.StatusCreated, w.Code)
	category := decode[model.Category](t, w)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/categories/%d", category.ID), map[string]string{"name": "Final"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/categories/%d", category.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Final", decode[model.Category](t, w).Name)
}

func TestPromptWithoutCategorySerializesNull(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/prompts", map[string]string{"name": "loose", "contents": "x"})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode[map[string]any](t, w)
	assert.Contains(t, body, "category_id")
	assert.Nil(t, body["category_id"])
}

func TestMiddleware(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, r, http.MethodOptions, "/api/prompts", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(t, r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPanickingRequestIsAccessLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	r := NewRouter(NewHandler(nil, nil, nil), zap.New(core))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(t, r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	requestID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)

	panics := logs.FilterMessage("panic recovered").All()
	require.Len(t, panics, 1)
	assert.Equal(t, requestID, panics[0].ContextMap()["request_id"])

	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, int64(http.StatusInternalServerError), completed[0].ContextMap()["status"])
	assert.Equal(t, requestID, completed[0].ContextMap()["request_id"])
}

// failingPromptStore fails every call the way a broken database would.
type failingPromptStore struct{}

var errDiskIO = errors.New("disk I/O error")

func (failingPromptStore) Create(context.Context, *model.Prompt) error {
	return apperror.Store("create prompt", errDiskIO)
}

func (failingPromptStore) List(context.Context, *uint) ([]model.Prompt, error) {
	return nil, apperror.Store("list prompts", errDiskIO)
}

func (failingPromptStore) GetByID(context.Context, uint) (*model.Prompt, error) {
	return nil, apperror.Store("find prompt", errDiskIO)
}

func (failingPromptStore) Update(context.Context, *model.Prompt) error {
	return apperror.Store("update prompt", errDiskIO)
}

func (failingPromptStore) Delete(context.Context, uint) error {
	return apperror.Store("delete prompt", errDiskIO)
}

func TestStoreFailuresMapToServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)

	categoryRepo := repository.NewMemoryCategoryRepository()
	var promptRepo failingPromptStore
	h := NewHandler(
		service.NewCategoryService(categoryRepo),
		service.NewPromptService(promptRepo, categoryRepo, false),
		service.NewReportService(promptRepo, categoryRepo),
	)
	r := NewRouter(h, zap.New(core))

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"create", http.MethodPost, "/api/prompts", map[string]string{"name": "a", "contents": "b"}},
		{"list", http.MethodGet, "/api/prompts", nil},
		{"get", http.MethodGet, "/api/prompts/1", nil},
		{"update", http.MethodPut, "/api/prompts/1", map[string]string{"name": "a", "contents": "b"}},
		{"delete", http.MethodDelete, "/api/prompts/1", nil},
		{"orphans", http.MethodGet, "/api/prompts/orphans", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, apperror.CodeStore, errorCode(t, w))
			assert.NotContains(t, w.Body.String(), errDiskIO.Error())
		})
	}

	assert.Equal(t, len(tests), logs.FilterMessage("request failed").Len())
}
