package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name   string
		err    error
		check  func(error) bool
		status int
	}{
		{"validation", NewValidation("bad criteria"), IsValidation, http.StatusBadRequest},
		{"storage", NewStorage(cause), IsStorage, http.StatusServiceUnavailable},
		{"mapping", NewMapping("purchase has no positions"), IsMapping, http.StatusInternalServerError},
		{"not found", NewNotFound("shift", "x"), IsNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("search: %w", tt.err)
			assert.True(t, tt.check(wrapped))
			assert.Equal(t, tt.status, GetHTTPStatus(wrapped))
		})
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := NewStorage(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "timeout")
	assert.False(t, IsValidation(err))
}

func TestUnknownErrorIsInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
	assert.False(t, IsAppError(errors.New("boom")))
}
