package http

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/core/ports"
	"github.com/motoshop/motoshop/internal/core/services"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

type IndexHandler struct {
	productService *services.ProductService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

func NewIndexHandler(productService *services.ProductService, logger ports.LoggerPort, metrics ports.MetricsPort) *IndexHandler {
	return &IndexHandler{
		productService: productService,
		logger:         logger,
		metrics:        metrics,
	}
}

// @Summary Catalog page
// @Description Renders the home page with the number of products in the catalog
// @Tags catalog
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 500 {string} string "Error page"
// @Router / [get]
func (h *IndexHandler) Index(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	count, err := h.productService.CountProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to render index", map[string]interface{}{
			"error": err.Error(),
		})
		c.HTML(http.StatusInternalServerError, "error.html", nil)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"products": count,
	})
}
