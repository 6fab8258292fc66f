package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hanafy/storefront/internal/core/domain"
)

// MySQLUsers implements port.UserRepository. Permissions are stored as a
// JSON array, the set being small and only ever read whole.
type MySQLUsers struct {
	db *sql.DB
}

func NewMySQLUsers(db *sql.DB) *MySQLUsers {
	return &MySQLUsers{db: db}
}

const userColumns = `id, name, email, password, role, permissions, created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var perms []byte
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &perms, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &u.Permissions); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
	}
	return &u, nil
}

func encodePerms(perms []string) ([]byte, error) {
	if perms == nil {
		perms = []string{}
	}
	return json.Marshal(perms)
}

func (m *MySQLUsers) List(ctx context.Context) ([]domain.User, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (m *MySQLUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := m.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (m *MySQLUsers) Create(ctx context.Context, u domain.User) error {
	perms, err := encodePerms(u.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	_, err = m.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, role, permissions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Password, u.Role, perms, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (m *MySQLUsers) UpdateRole(ctx context.Context, id string, role domain.Role, permissions []string) error {
	perms, err := encodePerms(permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	result, err := m.db.ExecContext(ctx,
		`UPDATE users SET role = ?, permissions = ? WHERE id = ?`, role, perms, id)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

func (m *MySQLUsers) UpdatePermissions(ctx context.Context, id string, permissions []string) error {
	perms, err := encodePerms(permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	result, err := m.db.ExecContext(ctx,
		`UPDATE users SET permissions = ? WHERE id = ?`, perms, id)
	if err != nil {
		return fmt.Errorf("update permissions: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

func (m *MySQLUsers) Delete(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
