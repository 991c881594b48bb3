package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_UnwrapsSentinel(t *testing.T) {
	err := NewAppError(http.StatusInternalServerError, "failed to commit transaction", ErrNotFound)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "failed to commit transaction: resource not found", err.Error())

	var appErr *AppError
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}

func TestAppError_WithoutCause(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, "bad input", nil)
	assert.Equal(t, "bad input", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
