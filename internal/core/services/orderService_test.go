package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc      *OrderService
	products *memProductRepo
	lines    *memLineRepo
}

func newOrderFixture() *orderFixture {
	products := newMemProductRepo()
	lines := newMemLineRepo()
	svc := NewOrderService(newMemOrderRepo(), lines, products, nopLogger{}, domain.NewValidator())
	return &orderFixture{svc: svc, products: products, lines: lines}
}

func TestCreateOrderDefaultsToSubmitted(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.CreateOrder(context.Background(), &domain.Order{ClientID: 7, DueDate: time.Now().AddDate(0, 0, 14)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, order.Status)
	assert.False(t, order.OrderDate.IsZero())
}

func TestCreateOrderRequiresDueDate(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.CreateOrder(context.Background(), &domain.Order{ClientID: 7})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAnyStatusTransitionIsAllowed(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	order, err := f.svc.CreateOrder(ctx, &domain.Order{ClientID: 1, DueDate: time.Now()})
	require.NoError(t, err)

	for _, status := range []domain.OrderStatus{
		domain.StatusCompleted, domain.StatusSubmitted, domain.StatusCancelled, domain.StatusDelayed,
	} {
		updated, err := f.svc.UpdateOrderStatus(ctx, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = f.svc.UpdateOrderStatus(ctx, order.ID, "9")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.svc.UpdateOrderStatus(ctx, 404, domain.StatusReady)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddOrderLine(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	product, err := f.products.CreateProduct(ctx, &domain.Product{Title: "Chain", Code: "C1", Category: domain.CategoryParts})
	require.NoError(t, err)
	order, err := f.svc.CreateOrder(ctx, &domain.Order{ClientID: 1, DueDate: time.Now()})
	require.NoError(t, err)

	line, err := f.svc.AddOrderLine(ctx, &domain.OrderLine{OrderID: order.ID, ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "Chain - 2", line.String())

	_, err = f.svc.AddOrderLine(ctx, &domain.OrderLine{OrderID: order.ID, ProductID: product.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, f.lines.lines, 1)

	_, err = f.svc.AddOrderLine(ctx, &domain.OrderLine{OrderID: order.ID, ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.AddOrderLine(ctx, &domain.OrderLine{OrderID: 99, ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.svc.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Lines[0].Quantity)
}

func TestDeleteOrderKeepsLines(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	product, err := f.products.CreateProduct(ctx, &domain.Product{Title: "Oil", Code: "OIL"})
	require.NoError(t, err)
	order, err := f.svc.CreateOrder(ctx, &domain.Order{ClientID: 1, DueDate: time.Now()})
	require.NoError(t, err)
	_, err = f.svc.AddOrderLine(ctx, &domain.OrderLine{OrderID: order.ID, ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrder(ctx, order.ID))

	lines, err := f.svc.ListOrderLines(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestGetOrdersByClientID(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	for _, client := range []int64{1, 2, 1} {
		_, err := f.svc.CreateOrder(ctx, &domain.Order{ClientID: client, DueDate: time.Now()})
		require.NoError(t, err)
	}

	orders, err := f.svc.GetOrdersByClientID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(3), orders[0].ID)
}

type brokenLineRepo struct {
	*memLineRepo
}

func (brokenLineRepo) GetOrderLinesByOrderID(context.Context, int64) ([]*domain.OrderLine, error) {
	return nil, errors.New("connection reset")
}

func TestGetOrderByIDFailsWhenLinesCannotBeRead(t *testing.T) {
	ctx := context.Background()
	orders := newMemOrderRepo()
	svc := NewOrderService(orders, brokenLineRepo{newMemLineRepo()}, newMemProductRepo(), nopLogger{}, domain.NewValidator())

	order, err := svc.CreateOrder(ctx, &domain.Order{ClientID: 7, DueDate: time.Now()})
	require.NoError(t, err)

	got, err := svc.GetOrderByID(ctx, order.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Nil(t, got)
}
