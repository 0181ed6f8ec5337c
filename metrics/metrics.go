package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the catalog.
type Metrics struct {
	// StatusCounts maps instance status to the number of instances in it
	StatusCounts map[string]int64 `json:"status_counts"`

	Books   int64 `json:"books"`
	Authors int64 `json:"authors"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the catalog.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetStatusCounts returns the count of instances by status
	GetStatusCounts(ctx context.Context) (map[string]int64, error)

	GetBookCount(ctx context.Context) (int64, error)
	GetAuthorCount(ctx context.Context) (int64, error)
}
