package entities

import "fmt"

// ValidationError is a caller mistake. Its message is returned to the client as is.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
