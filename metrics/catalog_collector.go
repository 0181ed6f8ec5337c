package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/local-library/catalog"
)

// Counter is the part of the catalog store the collector reads
type Counter interface {
	CountBooks(ctx context.Context) (int64, error)
	CountAuthors(ctx context.Context) (int64, error)
	CountInstances(ctx context.Context, filter catalog.InstanceFilter) (int64, error)
}

var statuses = []catalog.Status{catalog.Available, catalog.OnLoan, catalog.Maintenance, catalog.Reserved}

// CatalogCollector implements the Collector interface on top of the catalog store
type CatalogCollector struct {
	counter Counter
}

func NewCatalogCollector(counter Counter) *CatalogCollector {
	return &CatalogCollector{
		counter: counter,
	}
}

// Collect gathers all metrics from the store
func (c *CatalogCollector) Collect(ctx context.Context) (Metrics, error) {
	statusCounts, err := c.GetStatusCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting status counts: %w", err)
	}

	books, err := c.GetBookCount(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting book count: %w", err)
	}

	authors, err := c.GetAuthorCount(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting author count: %w", err)
	}

	return Metrics{
		StatusCounts: statusCounts,
		Books:        books,
		Authors:      authors,
		Timestamp:    time.Now(),
	}, nil
}

// GetStatusCounts returns the number of instances per status, keyed by partition name
func (c *CatalogCollector) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(statuses))
	for _, s := range statuses {
		n, err := c.counter.CountInstances(ctx, catalog.InstanceFilter{Status: s})
		if err != nil {
			return nil, fmt.Errorf("counting %s instances: %w", s, err)
		}
		counts[catalog.PartitionOf(s).String()] = n
	}
	return counts, nil
}

func (c *CatalogCollector) GetBookCount(ctx context.Context) (int64, error) {
	return c.counter.CountBooks(ctx)
}

func (c *CatalogCollector) GetAuthorCount(ctx context.Context) (int64, error) {
	return c.counter.CountAuthors(ctx)
}
