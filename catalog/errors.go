package catalog

import "errors"

var (
	ErrInvalid           = errors.New("invalid")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("record was modified concurrently")
	ErrInvalidLifespan   = errors.New("date of death is before date of birth")
	ErrDueBackNotAllowed = errors.New("due back date is only allowed for instances on loan or reserved")
)

// ErrInUse is returned when deleting a record other records still reference
var ErrInUse = errors.New("record is still referenced")

// ErrDuplicate is returned when a unique name is inserted twice
var ErrDuplicate = errors.New("already exists")
