package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// List returns all users, seeding the default admin on an empty table
	List(ctx context.Context) ([]*User, error)

	// EnsureSeed creates the default admin if no user exists
	EnsureSeed(ctx context.Context) error
}
