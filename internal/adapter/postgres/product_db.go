package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/motoshop/motoshop/internal/core/domain"
)

const productColumns = `id, title, code, category, manufacturer, size, stock_quantity,
	stocked, description, new_product, rrp, final_price, cover`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var size, description, cover sql.NullString
	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Code,
		&product.Category,
		&product.Manufacturer,
		&size,
		&product.StockQuantity,
		&product.Stocked,
		&description,
		&product.NewProduct,
		&product.RRP,
		&product.FinalPrice,
		&cover,
	)
	if err != nil {
		return nil, err
	}
	product.Size = domain.ProductSize(size.String)
	product.Description = description.String
	product.Cover = cover.String
	return product, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `INSERT INTO products (title, code, category, manufacturer, size, stock_quantity,
			stocked, description, new_product, rrp, final_price, cover)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns

	created, err := scanProduct(r.db.QueryRowContext(ctx, query,
		product.Title,
		product.Code,
		product.Category,
		product.Manufacturer,
		nullString(string(product.Size)),
		product.StockQuantity,
		product.Stocked,
		nullString(product.Description),
		product.NewProduct,
		product.RRP,
		product.FinalPrice,
		nullString(product.Cover),
	))
	if err != nil {
		return nil, translateError(err, "product")
	}
	return created, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "product")
	}
	return product, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.Manufacturer != "" {
		conditions = append(conditions, "manufacturer = "+arg(filter.Manufacturer))
	}
	if filter.Stocked != nil {
		conditions = append(conditions, "stocked = "+arg(*filter.Stocked))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		// Every search term has to match one of the searchable columns.
		for _, term := range strings.Fields(search) {
			p := arg("%" + term + "%")
			conditions = append(conditions, fmt.Sprintf("(manufacturer ILIKE %s OR CAST(stocked AS TEXT) ILIKE %s)", p, p))
		}
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `UPDATE products
		SET
			title = $1,
			code = $2,
			category = $3,
			manufacturer = $4,
			size = $5,
			stock_quantity = $6,
			stocked = $7,
			description = $8,
			new_product = $9,
			rrp = $10,
			final_price = $11,
			cover = $12
		WHERE id = $13
		RETURNING ` + productColumns

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		product.Title,
		product.Code,
		product.Category,
		product.Manufacturer,
		nullString(string(product.Size)),
		product.StockQuantity,
		product.Stocked,
		nullString(product.Description),
		product.NewProduct,
		product.RRP,
		product.FinalPrice,
		nullString(product.Cover),
		product.ID,
	))
	if err != nil {
		return nil, translateError(err, "product")
	}
	return updated, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, "product")
}
