package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WithDetailsCopies(t *testing.T) {
	detailed := ErrInvalidCoordinates.WithDetails(map[string]interface{}{"index": 3})

	assert.Equal(t, 3, detailed.Details["index"])
	assert.Empty(t, ErrInvalidCoordinates.Details)
	assert.Equal(t, http.StatusBadRequest, detailed.StatusCode)
	assert.Equal(t, "INVALID_COORDINATES: Invalid coordinates provided", detailed.Error())
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("people[2]: %w", ErrInvalidCoordinates.WithMessage("latitude out of range"))

	assert.True(t, errors.Is(wrapped, ErrInvalidCoordinates))
	assert.False(t, errors.Is(wrapped, ErrInvalidCapacity))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "latitude out of range", appErr.Message)
	assert.Equal(t, "Invalid coordinates provided", ErrInvalidCoordinates.Message)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
