package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/metrics"
	"github.com/hanafy/storefront/internal/port"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrBadStatus     = errors.New("unknown order status")
)

// OrderService assembles priced orders out of cart state and drives the
// admin status workflow. Notification delivery is handed to the dispatcher
// and never awaited.
type OrderService struct {
	orders     port.OrderRepository
	catalog    port.CatalogRepository
	settings   *SettingsService
	carts      *CartService
	dispatcher port.Dispatcher
	adminEmail string
	logger     *zap.Logger
	metrics    *metrics.Commerce
}

func NewOrderService(
	orders port.OrderRepository,
	catalog port.CatalogRepository,
	settings *SettingsService,
	carts *CartService,
	dispatcher port.Dispatcher,
	adminEmail string,
	logger *zap.Logger,
	m *metrics.Commerce,
) *OrderService {
	return &OrderService{
		orders:     orders,
		catalog:    catalog,
		settings:   settings,
		carts:      carts,
		dispatcher: dispatcher,
		adminEmail: adminEmail,
		logger:     logger,
		metrics:    m,
	}
}

// CreateOrder prices the session's cart and persists an immutable order
// record with status Pending.
//
// Stock decrement, cart clearing and the admin notification run only after
// the order is persisted, and each is best-effort. A crash between persist
// and decrement leaves stock high; that window is an accepted property of
// the design, not something this method papers over.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	sessionID string,
	userID *string,
	details domain.ShippingDetails,
	promo *domain.PromoCode,
) (*domain.Order, error) {
	cart, err := s.carts.Cart(ctx, sessionID)
	if err != nil {
		s.metrics.OrdersFailed.Inc()
		return nil, err
	}
	if cart.IsEmpty() {
		s.metrics.OrdersFailed.Inc()
		return nil, ErrEmptyCart
	}

	shippingCost, err := s.settings.ShippingCost(ctx)
	if err != nil {
		s.metrics.OrdersFailed.Inc()
		return nil, err
	}

	subtotal := cart.Subtotal()
	promoDiscount := decimal.Zero
	var promoCode *string
	if promo != nil {
		promoDiscount = promo.DiscountAmount(subtotal)
		code := promo.Code
		promoCode = &code
	}

	order := domain.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Items:         snapshotItems(cart),
		Shipping:      details,
		PromoCode:     promoCode,
		PromoDiscount: promoDiscount,
		Subtotal:      subtotal,
		ShippingCost:  shippingCost,
		Total:         subtotal.Sub(promoDiscount).Add(shippingCost),
		Status:        domain.OrderStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.metrics.OrdersFailed.Inc()
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.metrics.OrdersCreated.Inc()

	for _, item := range order.Items {
		if err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Warn("stock decrement failed",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err))
		}
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("cart clear failed",
			zap.String("order_id", order.ID),
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	s.dispatcher.Enqueue(port.Notification{
		Kind:      port.NotificationOrderPlaced,
		Recipient: s.adminEmail,
		Order:     order,
	})

	return &order, nil
}

// snapshotItems freezes cart lines into order items, so catalog edits
// after ordering never alter the historical record.
func snapshotItems(cart *domain.Cart) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Image:     line.Product.Image,
			UnitPrice: line.Product.DiscountedPrice(),
			Discount:  line.Product.Discount,
			Quantity:  line.Quantity,
		})
	}
	return items
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus applies an admin-initiated transition. The returned advisory
// flag is true when the transition leaves the conventional workflow (for
// example reopening a Delivered order); the store stays permissive and the
// change goes through regardless.
//
// Entering Shipped or Delivered enqueues exactly one customer notification.
// The status change is the source of truth; delivery is best-effort.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (advisory bool, err error) {
	if !status.Valid() {
		return false, ErrBadStatus
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return false, ErrOrderNotFound
	}

	advisory = !domain.CanTransition(order.Status, status)
	if advisory {
		s.logger.Warn("status transition outside workflow",
			zap.String("order_id", orderID),
			zap.String("from", string(order.Status)),
			zap.String("to", string(status)))
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return advisory, fmt.Errorf("update status: %w", err)
	}
	s.metrics.StatusTransitions.WithLabelValues(string(status)).Inc()

	if status.NotifiesCustomer() {
		order.Status = status
		s.dispatcher.Enqueue(port.Notification{
			Kind:      port.NotificationStatusChanged,
			Recipient: customerEmail(order),
			Order:     *order,
			Status:    status,
		})
	}
	return advisory, nil
}

// customerEmail picks the best known address for the buyer, falling back
// the way the checkout form allows.
func customerEmail(order *domain.Order) string {
	if order.Shipping.Email != "" {
		return order.Shipping.Email
	}
	return "customer@example.com"
}

// Delete removes an order permanently. Admin-only, explicit action.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
