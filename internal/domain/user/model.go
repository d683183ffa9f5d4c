package user

import "time"

// User represents an operator of the control plane
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	Avatar       string     `json:"avatar,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// User roles
const (
	RoleAdmin  = "Admin"
	RoleDevOps = "DevOps"
	RoleViewer = "Viewer"
)

// User status
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Seed account created when the user table is empty
const (
	SeedEmail    = "admin@example.com"
	SeedName     = "Cloud Admin"
	SeedPassword = "demo"
	SeedAvatar   = "https://picsum.photos/80/80"
)
