package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status is the availability of a book instance
type Status int

const (
	Available Status = iota + 1
	OnLoan
	Maintenance
	Reserved
)

// String returns the human readable name of the status
func (s Status) String() string {
	switch s {
	case Available:
		return "Available"
	case OnLoan:
		return "On loan"
	case Maintenance:
		return "Maintenance"
	case Reserved:
		return "Reserved"
	}
	return "Unknown"
}

// Code returns the single letter code used for storage and query strings
func (s Status) Code() string {
	switch s {
	case Available:
		return "a"
	case OnLoan:
		return "o"
	case Maintenance:
		return "m"
	case Reserved:
		return "r"
	}
	return ""
}

// ParseStatus accepts either the code or the name of a status
func ParseStatus(str string) (Status, error) {
	switch str {
	case "a", "Available":
		return Available, nil
	case "o", "On loan":
		return OnLoan, nil
	case "m", "Maintenance":
		return Maintenance, nil
	case "r", "Reserved":
		return Reserved, nil
	}
	return 0, fmt.Errorf("%w: status %q", ErrInvalid, str)
}

// Validate checks if the status is valid
func (s Status) Validate() error {
	if s < Available || s > Reserved {
		return fmt.Errorf("%w: status %d", ErrInvalid, s)
	}
	return nil
}

// HasDueDate reports whether a due-back date is meaningful for the status
func (s Status) HasDueDate() bool {
	return s == OnLoan || s == Reserved
}

func (s Status) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(s.String())
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

