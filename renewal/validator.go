package renewal

import (
	"time"

	"github.com/marcelsud/local-library/catalog"
)

const (
	// MaxAhead is the furthest a loan can be renewed from today
	MaxAhead = 4 * 7 * 24 * time.Hour
	// DefaultAhead is the renewal date proposed before the borrower picks one
	DefaultAhead = 3 * 7 * 24 * time.Hour
)

// Validate checks candidate as a new due-back date given today.
// Both ends of [today, today+4 weeks] are accepted. Times are compared as calendar days.
func Validate(candidate, today time.Time) (time.Time, error) {
	candidate = catalog.Day(candidate)
	today = catalog.Day(today)

	if candidate.Before(today) {
		return time.Time{}, &Error{Kind: PastDate}
	}
	if candidate.After(today.Add(MaxAhead)) {
		return time.Time{}, &Error{Kind: TooFarAhead}
	}
	return candidate, nil
}

// DefaultDate is the renewal date offered by default: three weeks from today
func DefaultDate(today time.Time) time.Time {
	return catalog.Day(today).Add(DefaultAhead)
}
