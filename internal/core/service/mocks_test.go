package service

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/port"
)

var errStoreDown = errors.New("store down")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// In-memory doubles for the port interfaces.

type memCartStore struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string]domain.Cart)}
}

func (m *memCartStore) Load(_ context.Context, sessionID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart := m.carts[sessionID]
	copied := domain.Cart{Items: append([]domain.CartItem(nil), cart.Items...)}
	return &copied, nil
}

func (m *memCartStore) Save(_ context.Context, sessionID string, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = domain.Cart{Items: append([]domain.CartItem(nil), cart.Items...)}
	return nil
}

func (m *memCartStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

type memCatalog struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func newMemCatalog(products ...domain.Product) *memCatalog {
	m := &memCatalog{products: make(map[string]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memCatalog) ListProducts(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, found := m.products[id]; found {
		return &p, nil
	}
	return nil, nil
}

func (m *memCatalog) CreateProduct(_ context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memCatalog) UpdateProduct(_ context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memCatalog) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *memCatalog) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[id]
	p.Views++
	m.products[id] = p
	return nil
}

func (m *memCatalog) DecrementStock(_ context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, found := m.products[id]
	if !found || p.Stock == nil {
		return nil
	}
	remaining := *p.Stock - quantity
	if remaining < 0 {
		remaining = 0
	}
	p.Stock = &remaining
	m.products[id] = p
	return nil
}

func (m *memCatalog) ReassignCategory(_ context.Context, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.products {
		if p.Category == from {
			p.Category = to
			m.products[id] = p
		}
	}
	return nil
}

func (m *memCatalog) stock(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.products[id].Stock
}

type memCategories struct {
	names []string
}

func (m *memCategories) List(context.Context) ([]string, error) {
	return append([]string(nil), m.names...), nil
}

func (m *memCategories) Add(_ context.Context, name string) error {
	m.names = append(m.names, name)
	return nil
}

func (m *memCategories) Rename(_ context.Context, from, to string) error {
	for i, n := range m.names {
		if n == from {
			m.names[i] = to
			return nil
		}
	}
	return errors.New("category not found")
}

func (m *memCategories) Delete(_ context.Context, name string) error {
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			return nil
		}
	}
	return nil
}

type memPromos struct {
	promos map[string]domain.PromoCode
}

func newMemPromos(promos ...domain.PromoCode) *memPromos {
	m := &memPromos{promos: make(map[string]domain.PromoCode)}
	for _, p := range promos {
		m.promos[p.Code] = p
	}
	return m
}

func (m *memPromos) List(context.Context) ([]domain.PromoCode, error) {
	out := make([]domain.PromoCode, 0, len(m.promos))
	for _, p := range m.promos {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPromos) Find(_ context.Context, code string) (*domain.PromoCode, error) {
	if p, found := m.promos[code]; found {
		return &p, nil
	}
	return nil, nil
}

func (m *memPromos) Create(_ context.Context, promo domain.PromoCode) error {
	m.promos[promo.Code] = promo
	return nil
}

func (m *memPromos) Delete(_ context.Context, code string) error {
	delete(m.promos, code)
	return nil
}

type memOrders struct {
	mu         sync.Mutex
	orders     map[string]domain.Order
	failCreate bool
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[string]domain.Order)}
}

func (m *memOrders) Create(_ context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return errStoreDown
	}
	m.orders[order.ID] = order
	return nil
}

func (m *memOrders) List(context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memOrders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrders) Get(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, found := m.orders[id]; found {
		return &o, nil
	}
	return nil, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, found := m.orders[id]
	if !found {
		return errors.New("order not found")
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

func (m *memOrders) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type memUsers struct {
	users map[string]domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]domain.User)}
}

func (m *memUsers) List(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(_ context.Context, u domain.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) UpdateRole(_ context.Context, id string, role domain.Role, permissions []string) error {
	u, found := m.users[id]
	if !found {
		return errors.New("user not found")
	}
	u.Role = role
	u.Permissions = permissions
	m.users[id] = u
	return nil
}

func (m *memUsers) UpdatePermissions(_ context.Context, id string, permissions []string) error {
	u, found := m.users[id]
	if !found {
		return errors.New("user not found")
	}
	u.Permissions = permissions
	m.users[id] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

type memSettings struct {
	values map[string]string
}

func newMemSettings(values map[string]string) *memSettings {
	if values == nil {
		values = make(map[string]string)
	}
	return &memSettings{values: values}
}

func (m *memSettings) Get(_ context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memSettings) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

type memDispatcher struct {
	mu   sync.Mutex
	sent []port.Notification
}

func (m *memDispatcher) Enqueue(n port.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
}

func (m *memDispatcher) notifications() []port.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]port.Notification(nil), m.sent...)
}
