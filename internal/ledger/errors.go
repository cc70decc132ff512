package ledger

import (
	"errors"
	"fmt"
)

// ErrNoBills is returned by GeneratePlan when there is nothing to schedule.
var ErrNoBills = errors.New("no bills found")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
