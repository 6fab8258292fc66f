package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hanafy/storefront/internal/core/domain"
)

// The MySQL adapters implement the durable repositories, one small type
// per concern, all sharing a *sql.DB. See schema.sql for the tables.

// MySQLCatalog implements port.CatalogRepository.
type MySQLCatalog struct {
	db *sql.DB
}

func NewMySQLCatalog(db *sql.DB) *MySQLCatalog {
	return &MySQLCatalog{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	var p domain.Product
	var stock sql.NullInt64
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Price, &p.Discount,
		&stock, &p.Category, &p.Views, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if stock.Valid {
		v := int(stock.Int64)
		p.Stock = &v
	}
	return &p, nil
}

const productColumns = `id, name, description, image, price, discount, stock, category, views, created_at, updated_at`

func (m *MySQLCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (m *MySQLCatalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := m.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

func (m *MySQLCatalog) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, image, price, discount, stock, category, views, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Image, p.Price, p.Discount,
		nullableInt(p.Stock), p.Category, p.Views, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (m *MySQLCatalog) UpdateProduct(ctx context.Context, p domain.Product) error {
	_, err := m.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, image = ?, price = ?, discount = ?, stock = ?, category = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Image, p.Price, p.Discount,
		nullableInt(p.Stock), p.Category, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (m *MySQLCatalog) DeleteProduct(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (m *MySQLCatalog) IncrementViews(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `UPDATE products SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// DecrementStock floors at zero in a single guarded statement, so one call
// can never double-decrement. Products without recorded stock (NULL) keep
// their unlimited ceiling.
func (m *MySQLCatalog) DecrementStock(ctx context.Context, id string, quantity int) error {
	_, err := m.db.ExecContext(ctx, `
		UPDATE products
		SET stock = GREATEST(stock - ?, 0)
		WHERE id = ? AND stock IS NOT NULL`,
		quantity, id,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

func (m *MySQLCatalog) ReassignCategory(ctx context.Context, from, to string) error {
	_, err := m.db.ExecContext(ctx, `UPDATE products SET category = ? WHERE category = ?`, to, from)
	if err != nil {
		return fmt.Errorf("reassign category: %w", err)
	}
	return nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
