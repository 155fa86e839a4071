package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the REST routes under /api.
func NewRouter(h *Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log), CORS(), ErrorHandler(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/categories", h.CreateCategory)
	api.GET("/categories", h.ListCategories)
	api.GET("/categories/:id", h.GetCategory)
	api.PUT("/categories/:id", h.RenameCategory)
	api.DELETE("/categories/:id", h.DeleteCategory)

	api.POST("/prompts", h.CreatePrompt)
	api.GET("/prompts", h.ListPrompts)
	api.GET("/prompts/orphans", h.ListOrphanedPrompts)
	api.GET("/prompts/:id", h.GetPrompt)
	api.PUT("/prompts/:id", h.UpdatePrompt)
	api.DELETE("/prompts/:id", h.DeletePrompt)

	return r
}
