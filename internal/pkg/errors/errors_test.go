package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	verr.Add([]string{"body", "rating"}, "field required", "missing")
	verr.Add([]string{"header", "authorization"}, "field required", "missing")

	wrapped := fmt.Errorf("add landmark: %w", verr)

	assert.ErrorIs(t, wrapped, ErrInvalidInput)
	assert.Equal(t, "validation failed: body.rating: field required; header.authorization: field required", verr.Error())

	var target *ValidationError
	assert.True(t, errors.As(wrapped, &target))
	assert.Len(t, target.Fields, 2)
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrDatabaseError, "could not store landmark")

	assert.Equal(t, "could not store landmark: database error", err.Error())
	assert.Equal(t, "INTERNAL_ERROR", err.Code)
	assert.ErrorIs(t, err, ErrDatabaseError)
}
