package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
	"github.com/motoshop/motoshop/internal/core/services"
	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

type OrderHandler struct {
	orderService *services.OrderService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

type OrderRequest struct {
	DueDate string `json:"due_date" binding:"required" example:"2025-03-15"`
	// ClientID is honored for admins only; customers always order for themselves.
	ClientID int64 `json:"client_id,omitempty" example:"7"`
}

// UpdateOrderRequest changes the due date or reassigns the client.
type UpdateOrderRequest struct {
	DueDate  *string `json:"due_date,omitempty" example:"2025-03-20"`
	ClientID *int64  `json:"client_id,omitempty" example:"7"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"6"`
}

type OrderLineRequest struct {
	ProductID int64 `json:"product_id" binding:"required" example:"1"`
	Quantity  int   `json:"quantity" example:"2"`
}

type OrderLineResponse struct {
	ID        int64  `json:"id" example:"1"`
	OrderID   int64  `json:"order_id" example:"1"`
	ProductID int64  `json:"product_id" example:"1"`
	Quantity  int    `json:"quantity" example:"2"`
	Display   string `json:"display" example:"Yamaha MT-07 - 2"`
}

type OrderResponse struct {
	ID          int64               `json:"id" example:"1"`
	OrderDate   string              `json:"order_date" example:"2025-03-01"`
	ClientID    int64               `json:"client_id" example:"7"`
	Status      string              `json:"status" example:"1"`
	StatusLabel string              `json:"status_label" example:"Submitted"`
	DueDate     string              `json:"due_date" example:"2025-03-15"`
	Lines       []OrderLineResponse `json:"lines,omitempty"`
}

func newOrderLineResponse(l *domain.OrderLine, _ int) OrderLineResponse {
	return OrderLineResponse{
		ID:        l.ID,
		OrderID:   l.OrderID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Display:   l.String(),
	}
}

func newOrderResponse(o *domain.Order, _ int) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		OrderDate:   o.OrderDate.Format(dateLayout),
		ClientID:    o.ClientID,
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
		DueDate:     o.DueDate.Format(dateLayout),
		Lines:       lo.Map(o.Lines, newOrderLineResponse),
	}
}

func NewOrderHandler(orderService *services.OrderService, logger ports.LoggerPort, metrics ports.MetricsPort) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
		metrics:      metrics,
	}
}

// @Summary Create order
// @Description Creates a submitted order for the caller dated today
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body OrderRequest true "Order data"
// @Success 201 {object} successResponse{data=OrderResponse} "Order created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	clientID := payload.UserID
	if payload.IsAdmin() && req.ClientID != 0 {
		clientID = req.ClientID
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &domain.Order{
		ClientID: clientID,
		DueDate:  dueDate,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Order created successfully", newOrderResponse(order, 0))
}

// @Summary Get order
// @Description Order with its lines; visible to its client and admins
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} successResponse{data=OrderResponse} "Order found"
// @Failure 403 {object} errorResponse "Access denied"
// @Failure 404 {object} errorResponse "Not found"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	order, ok := h.accessibleOrder(c)
	if !ok {
		return
	}

	newSuccessResponse(c, http.StatusOK, "Order found", newOrderResponse(order, 0))
}

// @Summary My orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse{data=[]OrderResponse} "Orders"
// @Router /orders/my [get]
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := h.orderService.GetOrdersByClientID(c.Request.Context(), payload.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Orders found", lo.Map(orders, newOrderResponse))
}

// @Summary List orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse{data=[]OrderResponse} "Orders"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Orders found", lo.Map(orders, newOrderResponse))
}

// @Summary Set order status
// @Description Any status may be set regardless of the current one
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body OrderStatusRequest true "New status code"
// @Success 200 {object} successResponse{data=OrderResponse} "Status updated"
// @Failure 400 {object} errorResponse "Unknown status"
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Order status updated", newOrderResponse(order, 0))
}

// @Summary Update order
// @Description Order date and status are not touched; use the status endpoint for the latter
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body UpdateOrderRequest true "Fields to change"
// @Success 200 {object} successResponse{data=OrderResponse} "Order updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Not found"
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
			return
		}
		order.DueDate = dueDate
	}
	order.ClientID = lo.FromPtrOr(req.ClientID, order.ClientID)

	updated, err := h.orderService.UpdateOrder(c.Request.Context(), order)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Order updated", newOrderResponse(updated, 0))
}

// @Summary Delete order
// @Description Lines are left in place
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} successResponse "Order deleted"
// @Failure 404 {object} errorResponse "Not found"
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Order deleted successfully", nil)
}

// @Summary Add order line
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body OrderLineRequest true "Line data"
// @Success 201 {object} successResponse{data=OrderLineResponse} "Line added"
// @Failure 400 {object} errorResponse "Quantity must be at least 1"
// @Failure 404 {object} errorResponse "Order or product not found"
// @Router /orders/{id}/lines [post]
func (h *OrderHandler) AddOrderLine(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	order, ok := h.accessibleOrder(c)
	if !ok {
		return
	}

	var req OrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	line, err := h.orderService.AddOrderLine(c.Request.Context(), &domain.OrderLine{
		OrderID:   order.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Order line added", newOrderLineResponse(line, 0))
}

// @Summary Remove order line
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Param line_id path int true "Line ID"
// @Success 200 {object} successResponse "Line removed"
// @Failure 404 {object} errorResponse "Not found"
// @Router /orders/{id}/lines/{line_id} [delete]
func (h *OrderHandler) DeleteOrderLine(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	order, ok := h.accessibleOrder(c)
	if !ok {
		return
	}
	lineID, ok := paramID(c, "line_id")
	if !ok {
		return
	}

	line, err := h.orderService.GetOrderLineByID(c.Request.Context(), lineID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if line.OrderID != order.ID {
		newErrorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	if err := h.orderService.DeleteOrderLine(c.Request.Context(), lineID); err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Order line removed", nil)
}

// accessibleOrder loads the :id order and checks the caller may see it.
func (h *OrderHandler) accessibleOrder(c *gin.Context) (*domain.Order, bool) {
	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	if !canAccess(payload, order.ClientID) {
		h.logger.Warn("Access denied to order", map[string]interface{}{
			"requester_id": payload.UserID,
			"client_id":    order.ClientID,
			"order_id":     id,
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return order, true
}
