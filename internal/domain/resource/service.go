package resource

import "context"

// Service defines the resource lifecycle
type Service interface {
	// Create provisions the resource through its provider adapter and persists it
	Create(ctx context.Context, input CreateInput) (*Resource, error)

	// GetByID returns one resource after refreshing its status
	GetByID(ctx context.Context, id int64) (*Resource, error)

	// List returns resources after refreshing live statuses
	List(ctx context.Context, filter Filter) ([]*Resource, error)

	// Update applies a partial patch without calling the provider
	Update(ctx context.Context, id int64, patch Patch) (*Resource, error)

	// Delete terminates the resource in its provider (best effort) and removes it
	Delete(ctx context.Context, id int64) error
}
