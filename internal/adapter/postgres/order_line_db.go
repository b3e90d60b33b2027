package postgres

import (
	"context"
	"database/sql"

	"github.com/motoshop/motoshop/internal/core/domain"
)

type OrderLineRepository struct {
	db *sql.DB
}

func NewOrderLineRepository(db *sql.DB) *OrderLineRepository {
	return &OrderLineRepository{db: db}
}

func (r *OrderLineRepository) CreateOrderLine(ctx context.Context, line *domain.OrderLine) (*domain.OrderLine, error) {
	query := `INSERT INTO order_lines (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		line.OrderID,
		line.ProductID,
		line.Quantity,
	).Scan(&line.ID)
	if err != nil {
		return nil, translateError(err, "order line")
	}
	return line, nil
}

func (r *OrderLineRepository) GetOrderLineByID(ctx context.Context, id int64) (*domain.OrderLine, error) {
	query := `SELECT id, order_id, product_id, quantity FROM order_lines WHERE id = $1`

	line := &domain.OrderLine{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&line.ID,
		&line.OrderID,
		&line.ProductID,
		&line.Quantity,
	)
	if err != nil {
		return nil, translateError(err, "order line")
	}
	return line, nil
}

// GetOrderLinesByOrderID joins the product when it still exists.
func (r *OrderLineRepository) GetOrderLinesByOrderID(ctx context.Context, orderID int64) ([]*domain.OrderLine, error) {
	query := `SELECT l.id, l.order_id, l.product_id, l.quantity, p.title, p.code, p.final_price
		FROM order_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.order_id = $1
		ORDER BY l.id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.OrderLine
	for rows.Next() {
		line := &domain.OrderLine{}
		var title, code, price sql.NullString
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &title, &code, &price); err != nil {
			return nil, err
		}
		if title.Valid {
			product := &domain.Product{ID: line.ProductID, Title: title.String, Code: code.String}
			if p, err := domain.NewPrice(price.String); err == nil {
				product.FinalPrice = p
			}
			line.Product = product
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *OrderLineRepository) ListOrderLines(ctx context.Context) ([]*domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, order_id, product_id, quantity FROM order_lines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.OrderLine
	for rows.Next() {
		line := &domain.OrderLine{}
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *OrderLineRepository) DeleteOrderLine(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM order_lines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, "order line")
}
