package renewal

import "fmt"

// Kind tells why a renewal date was rejected
type Kind int

const (
	PastDate Kind = iota + 1
	TooFarAhead
)

func (k Kind) String() string {
	switch k {
	case PastDate:
		return "past_date"
	case TooFarAhead:
		return "too_far_ahead"
	}
	return "unknown"
}

// Field is the request field renewal errors are attached to
const Field = "due_back"

// Error is a rejected renewal date. It is meant for the requester, not for the logs.
type Error struct {
	Kind Kind
}

func (e *Error) Error() string {
	switch e.Kind {
	case PastDate:
		return "Invalid date - renewal in past"
	case TooFarAhead:
		return "Invalid date - renewal more than 4 weeks ahead"
	}
	return fmt.Sprintf("Invalid date - %s", e.Kind)
}
