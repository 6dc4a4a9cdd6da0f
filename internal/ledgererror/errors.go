// Package ledgererror defines the error taxonomy shared by all stores.
// Callers match on the concrete types with errors.As.
package ledgererror

import "fmt"

// ValidationError represents malformed or out-of-domain input
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
}

// NotFoundError represents a lookup of an index, id or label that does not exist
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// EmptyDataError is returned by analytics when no transaction qualifies.
// Callers render a "no data" state instead of a zero chart.
type EmptyDataError struct {
	Operation string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("%s: no transaction data", e.Operation)
}

// PersistenceError represents a failed read or write of a store file.
// It implies a risk of data loss and must be surfaced to the user.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Invalid is a shorthand for building a ValidationError.
func Invalid(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
