package metric

import (
	"context"
	"time"
)

// Point is one sample of a resource's utilisation
type Point struct {
	Time       time.Time `json:"time"`
	CPU        float64   `json:"cpu"`
	Memory     float64   `json:"memory"`
	NetworkIn  float64   `json:"networkIn"`
	NetworkOut float64   `json:"networkOut"`
}

// Service defines the metrics gateway
type Service interface {
	// ForResource returns the recent utilisation series of a resource
	ForResource(ctx context.Context, resourceID int64) ([]Point, error)
}
