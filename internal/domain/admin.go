package domain

import "time"

// AdminRole enumerates dashboard operator roles.
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "superadmin"
)

// AdminUser models a dashboard operator. Admins live in a credential
// space separate from app users and carry no status field: an admin
// row either exists or it does not.
type AdminUser struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string
	Role         AdminRole
	Permissions  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
