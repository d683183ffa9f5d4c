package audit

import "context"

// Repository defines read access to the audit log. Entries are written by the
// resource repository inside the lifecycle transaction they describe.
type Repository interface {
	// List returns entries newest first. limit <= 0 returns everything.
	List(ctx context.Context, limit int) ([]*Entry, error)

	// ListByResource returns the entries still attached to a resource, oldest first.
	ListByResource(ctx context.Context, resourceID int64) ([]*Entry, error)
}
