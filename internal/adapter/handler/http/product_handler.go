package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
	"github.com/motoshop/motoshop/internal/core/services"
	"github.com/samber/lo"
)

type ProductHandler struct {
	productService *services.ProductService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

type ProductRequest struct {
	Title         string `json:"title" binding:"required" example:"Yamaha MT-07"`
	Code          string `json:"code" binding:"required" example:"MT07-23"`
	Category      string `json:"category" binding:"required" example:"1"`
	Manufacturer  string `json:"manufacturer" binding:"required" example:"Yamaha"`
	Size          string `json:"size,omitempty" example:"2"`
	StockQuantity int    `json:"stock_quantity" example:"3"`
	Stocked       *bool  `json:"stocked,omitempty" example:"true"`
	Description   string `json:"description,omitempty" example:"<p>Naked bike</p>"`
	NewProduct    bool   `json:"new_product" example:"true"`
	RRP           string `json:"rrp" binding:"required" example:"7999.00"`
	FinalPrice    string `json:"final_price" binding:"required" example:"7499.00"`
}

type UpdateProductRequest struct {
	Title         *string `json:"title,omitempty"`
	Code          *string `json:"code,omitempty"`
	Category      *string `json:"category,omitempty"`
	Manufacturer  *string `json:"manufacturer,omitempty"`
	Size          *string `json:"size,omitempty"`
	StockQuantity *int    `json:"stock_quantity,omitempty"`
	Stocked       *bool   `json:"stocked,omitempty"`
	Description   *string `json:"description,omitempty"`
	NewProduct    *bool   `json:"new_product,omitempty"`
	RRP           *string `json:"rrp,omitempty"`
	FinalPrice    *string `json:"final_price,omitempty"`
}

type ProductResponse struct {
	ID            int64  `json:"id" example:"1"`
	Title         string `json:"title" example:"Yamaha MT-07"`
	Code          string `json:"code" example:"MT07-23"`
	Category      string `json:"category" example:"1"`
	CategoryLabel string `json:"category_label" example:"Motorcycles"`
	Manufacturer  string `json:"manufacturer" example:"Yamaha"`
	Size          string `json:"size,omitempty" example:"2"`
	SizeLabel     string `json:"size_label,omitempty" example:"M"`
	StockQuantity int    `json:"stock_quantity" example:"3"`
	Stocked       bool   `json:"stocked" example:"true"`
	Description   string `json:"description,omitempty"`
	NewProduct    bool   `json:"new_product" example:"true"`
	RRP           string `json:"rrp" example:"7999.00"`
	FinalPrice    string `json:"final_price" example:"7499.00"`
	Cover         string `json:"cover,omitempty" example:"/media/product_covers/9b2e.jpg"`
}

type ChoicesResponse struct {
	Categories []domain.Choice `json:"categories"`
	Sizes      []domain.Choice `json:"sizes"`
}

func newProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Title:         p.Title,
		Code:          p.Code,
		Category:      string(p.Category),
		CategoryLabel: p.Category.Label(),
		Manufacturer:  p.Manufacturer,
		Size:          string(p.Size),
		SizeLabel:     p.Size.Label(),
		StockQuantity: p.StockQuantity,
		Stocked:       p.Stocked,
		Description:   p.Description,
		NewProduct:    p.NewProduct,
		RRP:           p.RRP.String(),
		FinalPrice:    p.FinalPrice.String(),
		Cover:         mediaURL(p.Cover),
	}
}

func NewProductHandler(productService *services.ProductService, logger ports.LoggerPort, metrics ports.MetricsPort) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
		metrics:        metrics,
	}
}

// @Summary List products
// @Description Filter by category, manufacturer and stocked; q searches manufacturer and stocked
// @Tags products
// @Produce json
// @Param category query string false "Category code" example:"1"
// @Param manufacturer query string false "Manufacturer" example:"Yamaha"
// @Param stocked query bool false "Stocked flag"
// @Param q query string false "Search terms"
// @Success 200 {object} successResponse{data=[]ProductResponse} "Products"
// @Failure 400 {object} errorResponse "Invalid filter"
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	filter := domain.ProductFilter{
		Category:     domain.ProductCategory(c.Query("category")),
		Manufacturer: c.Query("manufacturer"),
		Search:       c.Query("q"),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		newErrorResponse(c, http.StatusBadRequest, "Unknown category")
		return
	}
	if raw, ok := c.GetQuery("stocked"); ok {
		stocked, err := strconv.ParseBool(raw)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid stocked filter")
			return
		}
		filter.Stocked = &stocked
	}

	products, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Products found", lo.Map(products, func(p *domain.Product, _ int) ProductResponse {
		return newProductResponse(p)
	}))
}

// @Summary Product choices
// @Description Category and size codes with their display labels
// @Tags products
// @Produce json
// @Success 200 {object} successResponse{data=ChoicesResponse} "Choices"
// @Router /products/choices [get]
func (h *ProductHandler) Choices(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	newSuccessResponse(c, http.StatusOK, "Choices", ChoicesResponse{
		Categories: domain.ProductCategories(),
		Sizes:      domain.ProductSizes(),
	})
}

// @Summary Get product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} successResponse{data=ProductResponse} "Product found"
// @Failure 404 {object} errorResponse "Not found"
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Product found", newProductResponse(product))
}

// @Summary Create product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product data"
// @Success 201 {object} successResponse{data=ProductResponse} "Product created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	rrp, err := domain.NewPrice(req.RRP)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid rrp")
		return
	}
	finalPrice, err := domain.NewPrice(req.FinalPrice)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid final_price")
		return
	}

	product := &domain.Product{
		Title:         req.Title,
		Code:          req.Code,
		Category:      domain.ProductCategory(req.Category),
		Manufacturer:  req.Manufacturer,
		Size:          domain.ProductSize(req.Size),
		StockQuantity: req.StockQuantity,
		Stocked:       lo.FromPtrOr(req.Stocked, true),
		Description:   req.Description,
		NewProduct:    req.NewProduct,
		RRP:           rrp,
		FinalPrice:    finalPrice,
	}

	created, err := h.productService.CreateProduct(c.Request.Context(), product)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Product created successfully", newProductResponse(created))
}

// @Summary Update product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body UpdateProductRequest true "Fields to change"
// @Success 200 {object} successResponse{data=ProductResponse} "Product updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Not found"
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if req.RRP != nil {
		rrp, err := domain.NewPrice(*req.RRP)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid rrp")
			return
		}
		product.RRP = rrp
	}
	if req.FinalPrice != nil {
		finalPrice, err := domain.NewPrice(*req.FinalPrice)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid final_price")
			return
		}
		product.FinalPrice = finalPrice
	}
	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Code != nil {
		product.Code = *req.Code
	}
	if req.Category != nil {
		product.Category = domain.ProductCategory(*req.Category)
	}
	if req.Manufacturer != nil {
		product.Manufacturer = *req.Manufacturer
	}
	if req.Size != nil {
		product.Size = domain.ProductSize(*req.Size)
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Stocked != nil {
		product.Stocked = *req.Stocked
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.NewProduct != nil {
		product.NewProduct = *req.NewProduct
	}

	updated, err := h.productService.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Product updated successfully", newProductResponse(updated))
}

// @Summary Upload product cover
// @Tags products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param cover formData file true "jpg, png or gif image"
// @Success 200 {object} successResponse{data=ProductResponse} "Cover updated"
// @Failure 415 {object} errorResponse "Unsupported image type"
// @Router /products/{id}/cover [put]
func (h *ProductHandler) UploadCover(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	upload, closeFn, err := formUpload(c, "cover")
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Cover file is required")
		return
	}
	defer closeFn()

	product, err := h.productService.UpdateCover(c.Request.Context(), id, upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Cover updated", newProductResponse(product))
}

// @Summary Delete product
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} successResponse "Product deleted"
// @Failure 404 {object} errorResponse "Not found"
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}
