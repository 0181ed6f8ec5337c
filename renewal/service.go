package renewal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/local-library/catalog"
)

// Store is the part of the catalog a renewal needs
type Store interface {
	SelectInstance(ctx context.Context, id uuid.UUID) (catalog.Instance, error)
	UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time, version int64) error
}

// Clock returns the current time. Injected so "today" can be fixed in tests.
type Clock func() time.Time

// Proposal is what the borrower sees before submitting a renewal
type Proposal struct {
	Instance catalog.Instance
	DueBack  time.Time
}

type UseCase interface {
	Propose(ctx context.Context, id uuid.UUID) (Proposal, error)
	Renew(ctx context.Context, id uuid.UUID, candidate time.Time) (catalog.Instance, error)
}

type Service struct {
	Store Store
	Now   Clock
}

func NewService(store Store, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		Store: store,
		Now:   now,
	}
}

// Propose loads the instance and the default renewal date
func (s *Service) Propose(ctx context.Context, id uuid.UUID) (Proposal, error) {
	i, err := s.Store.SelectInstance(ctx, id)
	if err != nil {
		return Proposal{}, fmt.Errorf("selecting instance: %w", err)
	}
	if err := renewable(i); err != nil {
		return Proposal{}, err
	}
	return Proposal{Instance: i, DueBack: DefaultDate(s.Now())}, nil
}

// Renew validates candidate and stores it as the instance's new due-back date.
// A rejected date comes back as *Error; a concurrent change as catalog.ErrConflict.
// Available and Maintenance instances cannot carry a due-back date, so they
// come back as catalog.ErrDueBackNotAllowed.
func (s *Service) Renew(ctx context.Context, id uuid.UUID, candidate time.Time) (catalog.Instance, error) {
	i, err := s.Store.SelectInstance(ctx, id)
	if err != nil {
		return catalog.Instance{}, fmt.Errorf("selecting instance: %w", err)
	}
	if err := renewable(i); err != nil {
		return catalog.Instance{}, err
	}
	due, err := Validate(candidate, s.Now())
	if err != nil {
		return catalog.Instance{}, err
	}
	if err := s.Store.UpdateDueBack(ctx, id, due, i.Version); err != nil {
		return catalog.Instance{}, fmt.Errorf("updating due back: %w", err)
	}
	i.DueBack = &due
	i.Version++
	return i, nil
}

func renewable(i catalog.Instance) error {
	if !i.Status.HasDueDate() {
		return fmt.Errorf("renewing %s instance: %w", i.Status, catalog.ErrDueBackNotAllowed)
	}
	return nil
}
