package audit

import "context"

// Service defines the interface for audit log queries
type Service interface {
	// List returns the most recent entries, newest first
	List(ctx context.Context, limit int) ([]*Entry, error)

	// ForResource returns the history of one resource
	ForResource(ctx context.Context, resourceID int64) ([]*Entry, error)
}
