package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
)

// OrderService manages orders and their lines. Status changes are not
// restricted: any status may follow any other.
type OrderService struct {
	orderRepo   ports.OrderRepository
	lineRepo    ports.OrderLineRepository
	productRepo ports.ProductRepository
	logger      ports.LoggerPort
	validate    *validator.Validate
}

func NewOrderService(
	orderRepo ports.OrderRepository,
	lineRepo ports.OrderLineRepository,
	productRepo ports.ProductRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		productRepo: productRepo,
		logger:      logger,
		validate:    validate,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.Status == "" {
		order.Status = domain.StatusSubmitted
	}
	if err := s.validate.Struct(order); err != nil {
		s.logger.Error("Order validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Failed to create order", map[string]interface{}{
			"error":     err.Error(),
			"client_id": order.ClientID,
		})
		return nil, err
	}

	s.logger.Info("Order created successfully", map[string]interface{}{
		"order_id":  created.ID,
		"client_id": created.ClientID,
	})
	return created, nil
}

// GetOrderByID returns the order with its lines.
func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get order", map[string]interface{}{
			"error":    err.Error(),
			"order_id": id,
		})
		return nil, err
	}

	lines, err := s.lineRepo.GetOrderLinesByOrderID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get order lines", map[string]interface{}{
			"error":    err.Error(),
			"order_id": id,
		})
		return nil, fmt.Errorf("failed to get lines of order %d: %w", id, err)
	}
	order.Lines = lines
	return order, nil
}

func (s *OrderService) GetOrdersByClientID(ctx context.Context, clientID int64) ([]*domain.Order, error) {
	orders, err := s.orderRepo.GetOrdersByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("Failed to get orders", map[string]interface{}{
			"error":     err.Error(),
			"client_id": clientID,
		})
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.ListOrders(ctx)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrValidation, status)
	}

	order, err := s.orderRepo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		s.logger.Error("Failed to update order status", map[string]interface{}{
			"error":    err.Error(),
			"order_id": id,
		})
		return nil, err
	}

	s.logger.Info("Order status changed", map[string]interface{}{
		"order_id": id,
		"status":   status.Label(),
	})
	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := s.validate.Struct(order); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	updated, err := s.orderRepo.UpdateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Failed to update order", map[string]interface{}{
			"error":    err.Error(),
			"order_id": order.ID,
		})
		return nil, err
	}
	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		s.logger.Error("Failed to delete order", map[string]interface{}{
			"error":    err.Error(),
			"order_id": id,
		})
		return err
	}
	s.logger.Info("Order deleted successfully", map[string]interface{}{
		"order_id": id,
	})
	return nil
}

// AddOrderLine checks that the order and product exist before inserting,
// since the table itself carries no foreign keys.
func (s *OrderService) AddOrderLine(ctx context.Context, line *domain.OrderLine) (*domain.OrderLine, error) {
	if err := s.validate.Struct(line); err != nil {
		s.logger.Error("Order line validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.orderRepo.GetOrderByID(ctx, line.OrderID); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetProductByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}

	created, err := s.lineRepo.CreateOrderLine(ctx, line)
	if err != nil {
		s.logger.Error("Failed to create order line", map[string]interface{}{
			"error":    err.Error(),
			"order_id": line.OrderID,
		})
		return nil, err
	}
	created.Product = product

	s.logger.Info("Order line added", map[string]interface{}{
		"order_id": created.OrderID,
		"line":     created.String(),
	})
	return created, nil
}

func (s *OrderService) GetOrderLineByID(ctx context.Context, id int64) (*domain.OrderLine, error) {
	return s.lineRepo.GetOrderLineByID(ctx, id)
}

func (s *OrderService) ListOrderLines(ctx context.Context) ([]*domain.OrderLine, error) {
	return s.lineRepo.ListOrderLines(ctx)
}

func (s *OrderService) DeleteOrderLine(ctx context.Context, id int64) error {
	if err := s.lineRepo.DeleteOrderLine(ctx, id); err != nil {
		s.logger.Error("Failed to delete order line", map[string]interface{}{
			"error":   err.Error(),
			"line_id": id,
		})
		return err
	}
	return nil
}
