package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List retrieves all users ordered by ID
	List(ctx context.Context) ([]*User, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}
