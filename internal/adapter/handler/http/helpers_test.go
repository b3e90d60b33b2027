package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/adapter/logger"
	"github.com/motoshop/motoshop/internal/adapter/photo"
	"github.com/motoshop/motoshop/internal/adapter/prometheus"
	"github.com/motoshop/motoshop/internal/adapter/storage"
	"github.com/motoshop/motoshop/internal/admin"
	"github.com/motoshop/motoshop/internal/config"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/services"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noCache struct{}

func (noCache) Get(string) ([]byte, error)              { return nil, fmt.Errorf("miss") }
func (noCache) Set(string, []byte, time.Duration) error { return nil }
func (noCache) Delete(string) error                     { return nil }

type stubUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (r *stubUserRepo) find(pred func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if pred(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %w", domain.ErrNotFound)
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, err := r.find(func(u *domain.User) bool { return u.Username == user.Username }); err == nil {
		return nil, fmt.Errorf("user %w", domain.ErrConflict)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = int64(len(r.users) + 1)
	user.DateJoined = time.Now()
	cp := *user
	r.users = append(r.users, &cp)
	return user, nil
}

func (r *stubUserRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) ListUsers(context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.User(nil), r.users...), nil
}

func (r *stubUserRepo) ListUsersWithPhoto(context.Context) ([]*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) UpdateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			cp := *user
			r.users[i] = &cp
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %w", domain.ErrNotFound)
}

func (r *stubUserRepo) SetLastLogin(context.Context, int64) error { return nil }

func (r *stubUserRepo) DeleteUser(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user %w", domain.ErrNotFound)
}

type stubProductRepo struct {
	mu       sync.Mutex
	products []*domain.Product
	countErr error
}

func (r *stubProductRepo) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = int64(len(r.products) + 1)
	cp := *p
	r.products = append(r.products, &cp)
	return p, nil
}

func (r *stubProductRepo) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %w", domain.ErrNotFound)
}

func (r *stubProductRepo) ListProducts(_ context.Context, f domain.ProductFilter) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Stocked != nil && p.Stocked != *f.Stocked {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) CountProducts(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.products), nil
}

func (r *stubProductRepo) UpdateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.products {
		if existing.ID == p.ID {
			cp := *p
			r.products[i] = &cp
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %w", domain.ErrNotFound)
}

func (r *stubProductRepo) DeleteProduct(_ context.Context, id int64) error {
	return nil
}

type testServer struct {
	engine   *gin.Engine
	tokens   *JWTTokenService
	users    *stubUserRepo
	products *stubProductRepo
	orders   *stubOrderRepo
	lines    *stubLineRepo
	posts    *stubPostRepo
	comments *stubCommentRepo
	media    *storage.LocalStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "error")
	metrics := prometheus.NewPrometheusAdapter(promclient.NewRegistry())
	validate := domain.NewValidator()

	media, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	users := &stubUserRepo{}
	products := &stubProductRepo{}
	orders := &stubOrderRepo{orders: map[int64]*domain.Order{}}
	lines := &stubLineRepo{lines: map[int64]*domain.OrderLine{}}
	posts := &stubPostRepo{posts: map[int64]*domain.Post{}}
	comments := &stubCommentRepo{comments: map[int64]*domain.Comment{}}

	userService := services.NewUserService(users, media, photo.NewSquareNormalizer(media), log, validate)
	productService := services.NewProductService(products, media, log, validate, noCache{})
	orderService := services.NewOrderService(orders, lines, products, log, validate)
	postService := services.NewPostService(posts, comments, media, log, validate)
	tokens := NewJWTTokenService("test-secret", time.Hour, log)

	router, err := NewRouter(
		&config.HTTP{Env: "test", AllowedOrigins: "*"},
		tokens,
		NewIndexHandler(productService, log, metrics),
		NewUserHandler(userService, tokens, log, metrics),
		NewProductHandler(productService, log, metrics),
		NewOrderHandler(orderService, log, metrics),
		NewPostHandler(postService, log, metrics),
		NewAdminHandler(admin.NewSite(), log, metrics),
		NewMediaHandler(media, log, metrics),
	)
	require.NoError(t, err)

	return &testServer{
		engine:   router.Engine(),
		tokens:   tokens,
		users:    users,
		products: products,
		orders:   orders,
		lines:    lines,
		posts:    posts,
		comments: comments,
		media:    media,
	}
}

func (s *testServer) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	token, _, err := s.tokens.CreateToken(user)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

type stubOrderRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*domain.Order
}

func (r *stubOrderRepo) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	order.OrderDate = time.Now()
	cp := *order
	r.orders[order.ID] = &cp
	return order, nil
}

func (r *stubOrderRepo) GetOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %w", domain.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) GetOrdersByClientID(_ context.Context, clientID int64) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListOrders(context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	o, err := r.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	return r.UpdateOrder(ctx, o)
}

func (r *stubOrderRepo) UpdateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return nil, fmt.Errorf("order %w", domain.ErrNotFound)
	}
	cp := *order
	r.orders[order.ID] = &cp
	return order, nil
}

func (r *stubOrderRepo) DeleteOrder(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order %w", domain.ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}

type stubLineRepo struct {
	mu     sync.Mutex
	nextID int64
	lines  map[int64]*domain.OrderLine
}

func (r *stubLineRepo) CreateOrderLine(_ context.Context, line *domain.OrderLine) (*domain.OrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	line.ID = r.nextID
	cp := *line
	r.lines[line.ID] = &cp
	return line, nil
}

func (r *stubLineRepo) GetOrderLineByID(_ context.Context, id int64) (*domain.OrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[id]
	if !ok {
		return nil, fmt.Errorf("order line %w", domain.ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (r *stubLineRepo) GetOrderLinesByOrderID(_ context.Context, orderID int64) ([]*domain.OrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.OrderLine
	for id := int64(1); id <= r.nextID; id++ {
		if l, ok := r.lines[id]; ok && l.OrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubLineRepo) ListOrderLines(context.Context) ([]*domain.OrderLine, error) {
	return nil, nil
}

func (r *stubLineRepo) DeleteOrderLine(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[id]; !ok {
		return fmt.Errorf("order line %w", domain.ErrNotFound)
	}
	delete(r.lines, id)
	return nil
}

type stubPostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*domain.Post
}

func (r *stubPostRepo) CreatePost(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	post.ID = r.nextID
	post.Created = time.Now()
	cp := *post
	r.posts[post.ID] = &cp
	return post, nil
}

func (r *stubPostRepo) GetPostByID(_ context.Context, id int64) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %w", domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *stubPostRepo) ListPosts(context.Context) ([]*domain.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) UpdatePost(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return nil, fmt.Errorf("post %w", domain.ErrNotFound)
	}
	cp := *post
	r.posts[post.ID] = &cp
	return post, nil
}

func (r *stubPostRepo) DeletePost(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return fmt.Errorf("post %w", domain.ErrNotFound)
	}
	delete(r.posts, id)
	return nil
}

type stubCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*domain.Comment
}

func (r *stubCommentRepo) CreateComment(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = r.nextID
	comment.Created = time.Now()
	cp := *comment
	r.comments[comment.ID] = &cp
	return comment, nil
}

func (r *stubCommentRepo) GetCommentByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %w", domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

// GetCommentsByPostID returns newest first.
func (r *stubCommentRepo) GetCommentsByPostID(_ context.Context, postID int64) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for id := r.nextID; id >= 1; id-- {
		if c, ok := r.comments[id]; ok && c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubCommentRepo) ListComments(context.Context) ([]*domain.Comment, error) {
	return nil, nil
}

func (r *stubCommentRepo) DeleteComment(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return fmt.Errorf("comment %w", domain.ErrNotFound)
	}
	delete(r.comments, id)
	return nil
}
