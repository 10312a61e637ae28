package cycle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate      = errors.New("cycle: invalid date")
	ErrMissingStartDate = errors.New("cycle: start date is required")
	ErrEndBeforeStart   = errors.New("cycle: end date before start date")
	ErrInvalidFlow      = errors.New("cycle: invalid flow")
)

// RecordError identifies the record and field that failed validation.
type RecordError struct {
	RecordID string
	Field    string
	Value    string
	Err      error
}

func (e *RecordError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("record %s: %s %q: %v", e.RecordID, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
