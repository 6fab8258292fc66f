package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hanafy/storefront/internal/core/domain"
)

// MySQLCategories implements port.CategoryRepository.
type MySQLCategories struct {
	db *sql.DB
}

func NewMySQLCategories(db *sql.DB) *MySQLCategories {
	return &MySQLCategories{db: db}
}

func (m *MySQLCategories) List(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (m *MySQLCategories) Add(ctx context.Context, name string) error {
	_, err := m.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (m *MySQLCategories) Rename(ctx context.Context, from, to string) error {
	result, err := m.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE name = ?`, to, from)
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("category %s not found", from)
	}
	return nil
}

func (m *MySQLCategories) Delete(ctx context.Context, name string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// MySQLPromos implements port.PromoRepository.
type MySQLPromos struct {
	db *sql.DB
}

func NewMySQLPromos(db *sql.DB) *MySQLPromos {
	return &MySQLPromos{db: db}
}

func (m *MySQLPromos) List(ctx context.Context) ([]domain.PromoCode, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT code, discount FROM promo_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query promos: %w", err)
	}
	defer rows.Close()

	var out []domain.PromoCode
	for rows.Next() {
		var p domain.PromoCode
		if err := rows.Scan(&p.Code, &p.Discount); err != nil {
			return nil, fmt.Errorf("scan promo: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (m *MySQLPromos) Find(ctx context.Context, code string) (*domain.PromoCode, error) {
	var p domain.PromoCode
	err := m.db.QueryRowContext(ctx,
		`SELECT code, discount FROM promo_codes WHERE code = ?`, code,
	).Scan(&p.Code, &p.Discount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query promo: %w", err)
	}
	return &p, nil
}

func (m *MySQLPromos) Create(ctx context.Context, promo domain.PromoCode) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO promo_codes (code, discount) VALUES (?, ?)`, promo.Code, promo.Discount)
	if err != nil {
		return fmt.Errorf("insert promo: %w", err)
	}
	return nil
}

func (m *MySQLPromos) Delete(ctx context.Context, code string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM promo_codes WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete promo: %w", err)
	}
	return nil
}

// MySQLSettings implements port.SettingsRepository.
type MySQLSettings struct {
	db *sql.DB
}

func NewMySQLSettings(db *sql.DB) *MySQLSettings {
	return &MySQLSettings{db: db}
}

func (m *MySQLSettings) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := m.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query setting: %w", err)
	}
	return value, nil
}

func (m *MySQLSettings) Set(ctx context.Context, key, value string) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`, key, value)
	if err != nil {
		return fmt.Errorf("write setting: %w", err)
	}
	return nil
}
