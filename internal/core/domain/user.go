package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Admin-panel permissions grantable to staff accounts.
const (
	PermDashboard     = "dashboard"
	PermOrders        = "orders"
	PermNotifications = "notifications"
	PermProducts      = "products"
	PermCategories    = "categories"
	PermUsers         = "users"
	PermStaff         = "staff"
)

// KnownPermissions is the full grantable set, in display order.
var KnownPermissions = []string{
	PermDashboard, PermOrders, PermNotifications,
	PermProducts, PermCategories, PermUsers, PermStaff,
}

// User is an account record. Password handling is prototype-grade on
// purpose; this system does not present authentication as a security
// boundary.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasPermission reports whether the user may open an admin section.
// Admins implicitly hold every permission.
func (u User) HasPermission(perm string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
