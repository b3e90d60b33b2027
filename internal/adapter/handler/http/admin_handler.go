package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/admin"
	"github.com/motoshop/motoshop/internal/core/ports"
)

type AdminHandler struct {
	site    *admin.Site
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewAdminHandler(site *admin.Site, logger ports.LoggerPort, metrics ports.MetricsPort) *AdminHandler {
	return &AdminHandler{
		site:    site,
		logger:  logger,
		metrics: metrics,
	}
}

// @Summary Registered models
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse{data=[]admin.ModelInfo} "Models"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /admin [get]
func (h *AdminHandler) Index(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	newSuccessResponse(c, http.StatusOK, "Models", h.site.Models())
}

// @Summary Model changelist
// @Description Rows projected to list_display; list_filter fields as query params, q searches search_fields
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param model path string true "Model name" example:"product"
// @Param q query string false "Search terms"
// @Success 200 {object} successResponse{data=admin.Changelist} "Changelist"
// @Failure 400 {object} errorResponse "Unknown filter"
// @Failure 404 {object} errorResponse "Unknown model"
// @Router /admin/{model} [get]
func (h *AdminHandler) Changelist(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	model := c.Param("model")
	changelist, err := h.site.Changelist(c.Request.Context(), model, c.Request.URL.Query())
	if err != nil {
		h.logger.Warn("Admin changelist failed", map[string]interface{}{
			"error": err.Error(),
			"model": model,
		})
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Changelist", changelist)
}
