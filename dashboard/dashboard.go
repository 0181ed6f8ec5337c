package dashboard

import (
	"context"
	"fmt"

	"github.com/marcelsud/local-library/catalog"
)

// VisitsKey is the session key holding the per-session visit counter
const VisitsKey = "num_visits"

// Summary is the landing page payload
type Summary struct {
	NumBooks              int64 `json:"num_books"`
	NumInstances          int64 `json:"num_instances"`
	NumInstancesAvailable int64 `json:"num_instances_available"`
	NumAuthors            int64 `json:"num_authors"`
	NumVisits             int64 `json:"num_visits"`
}

// Counter is the read side of the catalog needed for the summary
type Counter interface {
	CountBooks(ctx context.Context) (int64, error)
	CountAuthors(ctx context.Context) (int64, error)
	CountInstances(ctx context.Context, filter catalog.InstanceFilter) (int64, error)
}

// VisitStore holds per-session counters, Get returns 0 for unknown sessions
type VisitStore interface {
	Get(ctx context.Context, sessionID, key string) (int64, error)
	Set(ctx context.Context, sessionID, key string, value int64) error
}

type UseCase interface {
	Summarize(ctx context.Context, sessionID string) (Summary, error)
}

type Service struct {
	Counter Counter
	Visits  VisitStore
}

func NewService(counter Counter, visits VisitStore) *Service {
	return &Service{
		Counter: counter,
		Visits:  visits,
	}
}

// Summarize gathers catalog counts and bumps the session's visit counter.
// NumVisits is the count before this visit, so a first visit reports 0.
func (s *Service) Summarize(ctx context.Context, sessionID string) (Summary, error) {
	var sum Summary
	var err error

	if sum.NumBooks, err = s.Counter.CountBooks(ctx); err != nil {
		return Summary{}, fmt.Errorf("counting books: %w", err)
	}
	if sum.NumInstances, err = s.Counter.CountInstances(ctx, catalog.InstanceFilter{}); err != nil {
		return Summary{}, fmt.Errorf("counting instances: %w", err)
	}
	available := catalog.InstanceFilter{Status: catalog.Available}
	if sum.NumInstancesAvailable, err = s.Counter.CountInstances(ctx, available); err != nil {
		return Summary{}, fmt.Errorf("counting available instances: %w", err)
	}
	if sum.NumAuthors, err = s.Counter.CountAuthors(ctx); err != nil {
		return Summary{}, fmt.Errorf("counting authors: %w", err)
	}

	if sessionID == "" {
		return sum, nil
	}
	if sum.NumVisits, err = s.Visits.Get(ctx, sessionID, VisitsKey); err != nil {
		return Summary{}, fmt.Errorf("reading visits: %w", err)
	}
	if err := s.Visits.Set(ctx, sessionID, VisitsKey, sum.NumVisits+1); err != nil {
		return Summary{}, fmt.Errorf("storing visits: %w", err)
	}

	return sum, nil
}
