package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createOrder(t *testing.T, srv *testServer, token string) OrderResponse {
	t.Helper()
	w := srv.do(t, http.MethodPost, "/orders", token, OrderRequest{DueDate: "2025-03-15"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order OrderResponse
	decodeData(t, w, &order)
	return order
}

func TestCreateOrderForCaller(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.tokenFor(t, &domain.User{ID: 7})

	// Customers cannot order on behalf of someone else.
	w := srv.do(t, http.MethodPost, "/orders", owner, OrderRequest{DueDate: "2025-03-15", ClientID: 9})
	require.Equal(t, http.StatusCreated, w.Code)
	var order OrderResponse
	decodeData(t, w, &order)
	assert.Equal(t, int64(7), order.ClientID)
	assert.Equal(t, "1", order.Status)
	assert.Equal(t, "Submitted", order.StatusLabel)
	assert.Equal(t, "2025-03-15", order.DueDate)

	w = srv.do(t, http.MethodPost, "/orders", owner, OrderRequest{DueDate: "15/03/2025"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/orders", "", OrderRequest{DueDate: "2025-03-15"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderAccess(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.tokenFor(t, &domain.User{ID: 7})
	stranger := srv.tokenFor(t, &domain.User{ID: 8})
	admin := srv.tokenFor(t, &domain.User{ID: 1, IsStaff: true})
	order := createOrder(t, srv, owner)
	path := fmt.Sprintf("/orders/%d", order.ID)

	tests := []struct {
		name   string
		token  string
		path   string
		status int
	}{
		{"owner", owner, path, http.StatusOK},
		{"admin", admin, path, http.StatusOK},
		{"other customer", stranger, path, http.StatusForbidden},
		{"missing order", owner, "/orders/999", http.StatusNotFound},
		{"bad id", owner, "/orders/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w := srv.do(t, http.MethodPost, path+"/lines", stranger, OrderLineRequest{ProductID: 1, Quantity: 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodGet, "/orders", owner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = srv.do(t, http.MethodPatch, path+"/status", owner, OrderStatusRequest{Status: "6"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = srv.do(t, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderLines(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.tokenFor(t, &domain.User{ID: 7})
	_, err := srv.products.CreateProduct(context.Background(), &domain.Product{Title: "Chain", Code: "CH-1"})
	require.NoError(t, err)

	order := createOrder(t, srv, owner)
	other := createOrder(t, srv, owner)
	linesPath := fmt.Sprintf("/orders/%d/lines", order.ID)

	w := srv.do(t, http.MethodPost, linesPath, owner, OrderLineRequest{ProductID: 1, Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = srv.do(t, http.MethodPost, linesPath, owner, OrderLineRequest{ProductID: 42, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPost, linesPath, owner, OrderLineRequest{ProductID: 1, Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var line OrderLineResponse
	decodeData(t, w, &line)
	assert.Equal(t, "Chain - 2", line.Display)

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got OrderResponse
	decodeData(t, w, &got)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, line.ID, got.Lines[0].ID)

	// A line can only be removed through the order it belongs to.
	w = srv.do(t, http.MethodDelete, fmt.Sprintf("/orders/%d/lines/%d", other.ID, line.ID), owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = srv.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", linesPath, 999), owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", linesPath, line.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = srv.lines.GetOrderLineByID(context.Background(), line.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminUpdatesOrder(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.tokenFor(t, &domain.User{ID: 7})
	admin := srv.tokenFor(t, &domain.User{ID: 1, IsStaff: true})
	order := createOrder(t, srv, owner)
	path := fmt.Sprintf("/orders/%d", order.ID)

	for _, status := range []string{"6", "1", "7"} {
		w := srv.do(t, http.MethodPatch, path+"/status", admin, OrderStatusRequest{Status: status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got OrderResponse
		decodeData(t, w, &got)
		assert.Equal(t, status, got.Status)
	}

	w := srv.do(t, http.MethodPatch, path+"/status", admin, OrderStatusRequest{Status: "9"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	dueDate := "2025-04-01"
	w = srv.do(t, http.MethodPut, path, admin, UpdateOrderRequest{DueDate: &dueDate})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got OrderResponse
	decodeData(t, w, &got)
	assert.Equal(t, dueDate, got.DueDate)
	assert.Equal(t, order.OrderDate, got.OrderDate)
	assert.Equal(t, int64(7), got.ClientID)

	w = srv.do(t, http.MethodPut, "/orders/999", admin, UpdateOrderRequest{DueDate: &dueDate})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
