package ports

import (
	"context"

	"github.com/motoshop/motoshop/internal/core/domain"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	GetOrdersByClientID(ctx context.Context, clientID int64) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type OrderLineRepository interface {
	CreateOrderLine(ctx context.Context, line *domain.OrderLine) (*domain.OrderLine, error)
	GetOrderLineByID(ctx context.Context, id int64) (*domain.OrderLine, error)
	GetOrderLinesByOrderID(ctx context.Context, orderID int64) ([]*domain.OrderLine, error)
	ListOrderLines(ctx context.Context) ([]*domain.OrderLine, error)
	DeleteOrderLine(ctx context.Context, id int64) error
}
