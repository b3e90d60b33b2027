package postgres

import (
	"context"
	"database/sql"

	"github.com/motoshop/motoshop/internal/core/domain"
)

const orderColumns = `id, order_date, client_id, status, due_date`

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.OrderDate,
		&order.ClientID,
		&order.Status,
		&order.DueDate,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder inserts the order; order_date is always the current date.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `INSERT INTO orders (client_id, status, due_date)
		VALUES ($1, $2, $3)
		RETURNING ` + orderColumns

	created, err := scanOrder(r.db.QueryRowContext(ctx, query,
		order.ClientID,
		order.Status,
		order.DueDate,
	))
	if err != nil {
		return nil, translateError(err, "order")
	}
	return created, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "order")
	}
	return order, nil
}

func (r *OrderRepository) GetOrdersByClientID(ctx context.Context, clientID int64) ([]*domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE client_id = $1 ORDER BY id DESC`, clientID)
}

func (r *OrderRepository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id DESC`)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	query := `UPDATE orders SET status = $1 WHERE id = $2 RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		return nil, translateError(err, "order")
	}
	return order, nil
}

// UpdateOrder rewrites the mutable columns; order_date never changes.
func (r *OrderRepository) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `UPDATE orders
		SET
			client_id = $1,
			status = $2,
			due_date = $3
		WHERE id = $4
		RETURNING ` + orderColumns

	updated, err := scanOrder(r.db.QueryRowContext(ctx, query,
		order.ClientID,
		order.Status,
		order.DueDate,
		order.ID,
	))
	if err != nil {
		return nil, translateError(err, "order")
	}
	return updated, nil
}

// DeleteOrder removes only the order row; its lines are not cascaded.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, "order")
}
