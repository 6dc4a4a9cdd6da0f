package ledgererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "with value",
			err:      &ValidationError{Field: "amount", Value: "abc", Reason: "must be a non-negative number"},
			expected: "invalid amount 'abc': must be a non-negative number",
		},
		{
			name:     "without value",
			err:      &ValidationError{Field: "description", Reason: "cannot be empty"},
			expected: "invalid description: cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "transaction", Key: "42"}
	assert.Equal(t, "transaction not found: 42", err.Error())
}

func TestEmptyDataError(t *testing.T) {
	err := &EmptyDataError{Operation: "category totals"}
	assert.Equal(t, "category totals: no transaction data", err.Error())
}

func TestPersistenceError_Unwrap(t *testing.T) {
	originalErr := errors.New("disk full")
	persistErr := &PersistenceError{Op: "write", Path: "transactions.json", Err: originalErr}

	assert.Equal(t, "failed to write 'transactions.json': disk full", persistErr.Error())
	assert.True(t, errors.Is(persistErr, originalErr))

	wrapped := fmt.Errorf("save ledger: %w", persistErr)
	var target *PersistenceError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "transactions.json", target.Path)
}

func TestInvalid(t *testing.T) {
	err := Invalid("date", "2024-13-01", "Date must be in YYYY-MM-DD format")
	var target *ValidationError
	assert.True(t, errors.As(error(err), &target))
	assert.Equal(t, "date", target.Field)
}
