package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatuses(t *testing.T) {
	assert.Equal(t, 400, BadRequest("x").Status)
	assert.Equal(t, 403, Forbidden("x").Status)
	assert.Equal(t, 404, NotFound("x").Status)
	assert.Equal(t, 500, InternalConfig("x").Status)
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(BadRequest("bad"))
	require.True(t, ok)
	assert.Equal(t, "bad", appErr.Message)

	wrapped := fmt.Errorf("submit: %w", NotFound("survey not found"))
	appErr, ok = AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
