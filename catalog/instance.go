package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Instance is a loanable copy of a book. The ID is a random UUID so loan URLs can't be guessed.
type Instance struct {
	ID       uuid.UUID
	BookID   int64
	Imprint  string
	DueBack  *time.Time
	Status   Status
	Borrower string
	Version  int64
}

// Validate checks the instance's status and due date agree
func (i Instance) Validate() error {
	if i.BookID <= 0 {
		return fmt.Errorf("%w: book is required", ErrInvalid)
	}
	if err := i.Status.Validate(); err != nil {
		return err
	}
	if i.DueBack != nil && !i.Status.HasDueDate() {
		return ErrDueBackNotAllowed
	}
	return nil
}

// IsOverdue reports whether the instance should have been returned before today
func (i Instance) IsOverdue(today time.Time) bool {
	return i.DueBack != nil && Day(*i.DueBack).Before(Day(today))
}
