package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hanafy/storefront/internal/core/domain"
)

// MySQLOrders implements port.OrderRepository over the orders and
// order_items tables.
type MySQLOrders struct {
	db *sql.DB
}

func NewMySQLOrders(db *sql.DB) *MySQLOrders {
	return &MySQLOrders{db: db}
}

const orderColumns = `id, user_id, ship_name, ship_email, ship_phone, ship_alt_phone, ship_address, ship_city,
	payment_method, card_number, card_expiry, wallet_number, paypal_email,
	promo_code, promo_discount, subtotal, shipping_cost, total, status, created_at`

// Create persists the order header and its line items in one transaction,
// so a half-written order is never visible.
func (m *MySQLOrders) Create(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, nullableString(order.UserID),
		order.Shipping.Name, order.Shipping.Email, order.Shipping.Phone, order.Shipping.AltPhone,
		order.Shipping.Address, order.Shipping.City,
		order.Shipping.PaymentMethod, order.Shipping.CardNumber, order.Shipping.CardExpiry,
		order.Shipping.WalletNumber, order.Shipping.PayPalEmail,
		nullableString(order.PromoCode), order.PromoDiscount,
		order.Subtotal, order.ShippingCost, order.Total, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, image, unit_price, discount, quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Name, item.Image, item.UnitPrice, item.Discount, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (m *MySQLOrders) List(ctx context.Context) ([]domain.Order, error) {
	return m.listOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (m *MySQLOrders) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return m.listOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (m *MySQLOrders) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := m.orderItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (m *MySQLOrders) Get(ctx context.Context, id string) (*domain.Order, error) {
	row := m.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	order, err := scanOrder(row)
	if err != nil || order == nil {
		return order, err
	}
	order.Items, err = m.orderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (m *MySQLOrders) orderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT product_id, name, image, unit_price, discount, quantity
		FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Image,
			&item.UnitPrice, &item.Discount, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	var userID, promoCode sql.NullString
	err := row.Scan(&o.ID, &userID,
		&o.Shipping.Name, &o.Shipping.Email, &o.Shipping.Phone, &o.Shipping.AltPhone,
		&o.Shipping.Address, &o.Shipping.City,
		&o.Shipping.PaymentMethod, &o.Shipping.CardNumber, &o.Shipping.CardExpiry,
		&o.Shipping.WalletNumber, &o.Shipping.PayPalEmail,
		&promoCode, &o.PromoDiscount, &o.Subtotal, &o.ShippingCost, &o.Total,
		&o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if userID.Valid {
		o.UserID = &userID.String
	}
	if promoCode.Valid {
		o.PromoCode = &promoCode.String
	}
	return &o, nil
}

func (m *MySQLOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := m.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

func (m *MySQLOrders) Delete(ctx context.Context, id string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return tx.Commit()
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
