package entity

import "fmt"

// ValidationError reports which entry field failed validation and why.
// Handlers unwrap it with errors.As to build a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
