package catalog

import (
	"fmt"
	"time"
)

// Author writes books. Dates are calendar days and optional.
type Author struct {
	ID          int64
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	DateOfDeath *time.Time
}

// Name returns "Last, First", the way authors are listed
func (a Author) Name() string {
	return fmt.Sprintf("%s, %s", a.LastName, a.FirstName)
}

// Validate checks the author's lifespan
func (a Author) Validate() error {
	if a.FirstName == "" || a.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalid)
	}
	if a.DateOfBirth != nil && a.DateOfDeath != nil && Day(*a.DateOfDeath).Before(Day(*a.DateOfBirth)) {
		return ErrInvalidLifespan
	}
	return nil
}
