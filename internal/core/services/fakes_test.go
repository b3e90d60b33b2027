package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/motoshop/motoshop/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

var errCacheMiss = errors.New("cache miss")

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	if !ok {
		return nil, errCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{files: map[string][]byte{}} }

func (s *memStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, fmt.Errorf("media %s %w", key, domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

func (s *memStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type fakeNormalizer struct {
	calls []string
	err   error
}

func (n *fakeNormalizer) Normalize(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	n.calls = append(n.calls, key)
	return n.err
}

type memUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[int64]*domain.User{}} }

func (r *memUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("user %w", domain.ErrConflict)
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.DateJoined = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %w", domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %w", domain.ErrNotFound)
}

func (r *memUserRepo) ListUsers(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListUsersWithPhoto(ctx context.Context) ([]*domain.User, error) {
	all, _ := r.ListUsers(ctx)
	var out []*domain.User
	for _, u := range all {
		if u.HasPhoto() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, fmt.Errorf("user %w", domain.ErrNotFound)
	}
	cp := *user
	r.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memUserRepo) SetLastLogin(_ context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}
	u.LastLogin = time.Now()
	return nil
}

func (r *memUserRepo) DeleteUser(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

type memProductRepo struct {
	nextID   int64
	products map[int64]*domain.Product
	gets     int
	countErr error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[int64]*domain.Product{}}
}

func (r *memProductRepo) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products[p.ID] = &cp
	return p, nil
}

func (r *memProductRepo) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	r.gets++
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %w", domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) ListProducts(_ context.Context, f domain.ProductFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for id := int64(1); id <= r.nextID; id++ {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Manufacturer != "" && p.Manufacturer != f.Manufacturer {
			continue
		}
		if f.Stocked != nil && p.Stocked != *f.Stocked {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) CountProducts(_ context.Context) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.products), nil
}

func (r *memProductRepo) UpdateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.products[p.ID]; !ok {
		return nil, fmt.Errorf("product %w", domain.ErrNotFound)
	}
	cp := *p
	r.products[p.ID] = &cp
	return p, nil
}

func (r *memProductRepo) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %w", domain.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

type memOrderRepo struct {
	nextID int64
	orders map[int64]*domain.Order
}

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{orders: map[int64]*domain.Order{}} }

func (r *memOrderRepo) CreateOrder(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	o.ID = r.nextID
	o.OrderDate = time.Now().Truncate(24 * time.Hour)
	cp := *o
	r.orders[o.ID] = &cp
	return o, nil
}

func (r *memOrderRepo) GetOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %w", domain.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetOrdersByClientID(_ context.Context, clientID int64) ([]*domain.Order, error) {
	var out []*domain.Order
	for id := r.nextID; id >= 1; id-- {
		if o, ok := r.orders[id]; ok && o.ClientID == clientID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListOrders(_ context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for id := r.nextID; id >= 1; id-- {
		if o, ok := r.orders[id]; ok {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateOrderStatus(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %w", domain.ErrNotFound)
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) UpdateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	o, ok := r.orders[order.ID]
	if !ok {
		return nil, fmt.Errorf("order %w", domain.ErrNotFound)
	}
	o.ClientID, o.Status, o.DueDate = order.ClientID, order.Status, order.DueDate
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) DeleteOrder(_ context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order %w", domain.ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}

type memLineRepo struct {
	nextID int64
	lines  map[int64]*domain.OrderLine
}

func newMemLineRepo() *memLineRepo { return &memLineRepo{lines: map[int64]*domain.OrderLine{}} }

func (r *memLineRepo) CreateOrderLine(_ context.Context, l *domain.OrderLine) (*domain.OrderLine, error) {
	if l.Quantity < 1 {
		return nil, fmt.Errorf("%w: check order_lines_quantity_check failed", domain.ErrConstraint)
	}
	r.nextID++
	l.ID = r.nextID
	cp := *l
	r.lines[l.ID] = &cp
	return l, nil
}

func (r *memLineRepo) GetOrderLineByID(_ context.Context, id int64) (*domain.OrderLine, error) {
	l, ok := r.lines[id]
	if !ok {
		return nil, fmt.Errorf("order line %w", domain.ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (r *memLineRepo) GetOrderLinesByOrderID(_ context.Context, orderID int64) ([]*domain.OrderLine, error) {
	var out []*domain.OrderLine
	for id := int64(1); id <= r.nextID; id++ {
		if l, ok := r.lines[id]; ok && l.OrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLineRepo) ListOrderLines(_ context.Context) ([]*domain.OrderLine, error) {
	var out []*domain.OrderLine
	for id := int64(1); id <= r.nextID; id++ {
		if l, ok := r.lines[id]; ok {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLineRepo) DeleteOrderLine(_ context.Context, id int64) error {
	if _, ok := r.lines[id]; !ok {
		return fmt.Errorf("order line %w", domain.ErrNotFound)
	}
	delete(r.lines, id)
	return nil
}

type memPostRepo struct {
	nextID int64
	posts  map[int64]*domain.Post
}

func newMemPostRepo() *memPostRepo { return &memPostRepo{posts: map[int64]*domain.Post{}} }

func (r *memPostRepo) CreatePost(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.nextID++
	p.ID = r.nextID
	p.Created = time.Now()
	cp := *p
	r.posts[p.ID] = &cp
	return p, nil
}

func (r *memPostRepo) GetPostByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %w", domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) ListPosts(_ context.Context) ([]*domain.Post, error) {
	var out []*domain.Post
	for id := r.nextID; id >= 1; id-- {
		if p, ok := r.posts[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPostRepo) UpdatePost(_ context.Context, p *domain.Post) (*domain.Post, error) {
	if _, ok := r.posts[p.ID]; !ok {
		return nil, fmt.Errorf("post %w", domain.ErrNotFound)
	}
	cp := *p
	r.posts[p.ID] = &cp
	return p, nil
}

func (r *memPostRepo) DeletePost(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return fmt.Errorf("post %w", domain.ErrNotFound)
	}
	delete(r.posts, id)
	return nil
}

type memCommentRepo struct {
	nextID   int64
	comments map[int64]*domain.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: map[int64]*domain.Comment{}}
}

func (r *memCommentRepo) CreateComment(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.nextID++
	c.ID = r.nextID
	c.Created = time.Now()
	cp := *c
	r.comments[c.ID] = &cp
	return c, nil
}

func (r *memCommentRepo) GetCommentByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %w", domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *memCommentRepo) GetCommentsByPostID(_ context.Context, postID int64) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for id := r.nextID; id >= 1; id-- {
		if c, ok := r.comments[id]; ok && c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCommentRepo) ListComments(_ context.Context) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for id := r.nextID; id >= 1; id-- {
		if c, ok := r.comments[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCommentRepo) DeleteComment(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return fmt.Errorf("comment %w", domain.ErrNotFound)
	}
	delete(r.comments, id)
	return nil
}
