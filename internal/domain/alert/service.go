package alert

import "context"

// Service defines the interface for alert queries
type Service interface {
	// List derives the current alerts from stored resource statuses
	List(ctx context.Context) ([]*Alert, error)
}
