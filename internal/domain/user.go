package domain

import "time"

// UserStatus represents lifecycle states for an app user.
type UserStatus string

const (
	UserStatusActive          UserStatus = "active"
	UserStatusSuspended       UserStatus = "suspended"
	UserStatusBanned          UserStatus = "banned"
	UserStatusPendingDeletion UserStatus = "pending_deletion"
)

// UserRole enumerates app user roles.
type UserRole string

const (
	UserRoleUser     UserRole = "user"
	UserRoleBusiness UserRole = "business"
)

// User is the domain model for app users. PasswordHash never leaves
// the service layer.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Address      *string
	Avatar       *string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Favorites holds a user's saved listing and property ids.
type Favorites struct {
	ServiceIDs  []int64
	PropertyIDs []int64
}
