package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prompt-wizard/internal/apperror"
	"prompt-wizard/internal/service"
)

// Handler exposes the category and prompt services over HTTP.
type Handler struct {
	categories *service.CategoryService
	prompts    *service.PromptService
	reports    *service.ReportService
}

func NewHandler(categories *service.CategoryService, prompts *service.PromptService, reports *service.ReportService) *Handler {
	return &Handler{categories: categories, prompts: prompts, reports: reports}
}

type categoryRequest struct {
	Name string `json:"name"`
}

type promptRequest struct {
	Name       string `json:"name"`
	Contents   string `json:"contents"`
	CategoryID *uint  `json:"category_id"`
}

func (r promptRequest) input() service.PromptInput {
	return service.PromptInput{Name: r.Name, Contents: r.Contents, CategoryID: r.CategoryID}
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid JSON body"))
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) RenameCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid JSON body"))
		return
	}

	category, err := h.categories.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreatePrompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid JSON body"))
		return
	}

	prompt, err := h.prompts.Create(c.Request.Context(), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, prompt)
}

// ListPrompts honours an optional ?category_id= exact-match filter.
func (h *Handler) ListPrompts(c *gin.Context) {
	var categoryID *uint
	if raw, ok := c.GetQuery("category_id"); ok {
		id, err := parseID(raw)
		if err != nil {
			_ = c.Error(apperror.BadRequest("category_id must be a positive integer"))
			return
		}
		categoryID = &id
	}

	prompts, err := h.prompts.List(c.Request.Context(), categoryID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

func (h *Handler) ListOrphanedPrompts(c *gin.Context) {
	prompts, err := h.reports.Orphans(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

func (h *Handler) GetPrompt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	prompt, err := h.prompts.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func (h *Handler) UpdatePrompt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid JSON body"))
		return
	}

	prompt, err := h.prompts.Update(c.Request.Context(), id, req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func (h *Handler) DeletePrompt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.prompts.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		_ = c.Error(apperror.BadRequest("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return uint(id), nil
}
