package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/port"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownPermission  = errors.New("unknown permission")
	ErrBadRole            = errors.New("role not assignable")
)

// UserService manages accounts, staff roles and admin-panel permissions.
// Credential checks are plain comparisons, kept deliberately at the
// prototype grade of the system; nothing here claims to be a security
// boundary.
type UserService struct {
	users         port.UserRepository
	adminEmail    string
	adminPassword string
}

func NewUserService(users port.UserRepository, adminEmail, adminPassword string) *UserService {
	return &UserService{users: users, adminEmail: adminEmail, adminPassword: adminPassword}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password are required")
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	user := domain.User{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Password:    password,
		Role:        domain.RoleUser,
		Permissions: nil,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login matches credentials against stored accounts, with the configured
// admin account checked last the way the original shop bootstraps its
// owner login.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user != nil && user.Password == password {
		return user, nil
	}
	if s.adminEmail != "" && email == strings.ToLower(s.adminEmail) && password == s.adminPassword {
		return &domain.User{
			ID:          "admin",
			Name:        "Admin",
			Email:       email,
			Role:        domain.RoleAdmin,
			Permissions: domain.KnownPermissions,
		}, nil
	}
	return nil, ErrInvalidCredentials
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetRole promotes or demotes an account. A fresh staff member starts with
// dashboard access only; demotion back to user drops all permissions.
func (s *UserService) SetRole(ctx context.Context, id string, role domain.Role) error {
	if role != domain.RoleUser && role != domain.RoleStaff {
		return fmt.Errorf("%w: %s", ErrBadRole, role)
	}
	var perms []string
	if role == domain.RoleStaff {
		perms = []string{domain.PermDashboard}
	}
	if err := s.users.UpdateRole(ctx, id, role, perms); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (s *UserService) SetPermissions(ctx context.Context, id string, perms []string) error {
	for _, p := range perms {
		known := false
		for _, k := range domain.KnownPermissions {
			if p == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %s", ErrUnknownPermission, p)
		}
	}
	if err := s.users.UpdatePermissions(ctx, id, perms); err != nil {
		return fmt.Errorf("update permissions: %w", err)
	}
	return nil
}

func (s *UserService) Remove(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
