package resource

import (
	"context"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
)

// Repository defines the interface for resource data access. Every mutating
// call that takes an audit entry writes the row and the entry in one
// transaction.
type Repository interface {
	// Create inserts the resource and its create entry, assigning both IDs
	Create(ctx context.Context, res *Resource, entry *audit.Entry) error

	// GetByID retrieves a resource by ID
	GetByID(ctx context.Context, id int64) (*Resource, error)

	// List retrieves resources matching the filter, ordered by ID
	List(ctx context.Context, filter Filter) ([]*Resource, error)

	// UpdateStatus sets status and updated_at on one row
	UpdateStatus(ctx context.Context, id int64, status Status) error

	// Update persists name, region, status and tags. The external ID is never written.
	Update(ctx context.Context, res *Resource, entry *audit.Entry) error

	// Delete removes the resource's audit entries and the resource, then
	// records entry detached from the deleted row
	Delete(ctx context.Context, id int64, entry *audit.Entry) error

	// CountByProviderType returns resource counts keyed by provider and type
	CountByProviderType(ctx context.Context) (map[Provider]map[Type]int, error)
}
