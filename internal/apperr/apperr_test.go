package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/geocoder89/taskhub/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{name: "validation", err: apperr.Validation("x", "bad"), want: apperr.KindValidation},
		{name: "auth", err: apperr.Auth("x", "nope"), want: apperr.KindAuth},
		{name: "not found", err: apperr.NotFound("x", "gone"), want: apperr.KindNotFound},
		{name: "conflict", err: apperr.Conflict("x", "dup"), want: apperr.KindConflict},
		{name: "wrapped", err: fmt.Errorf("ctx: %w", apperr.NotFound("x", "gone")), want: apperr.KindNotFound},
		{name: "plain error", err: errors.New("boom"), want: apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestInternalUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Internal("Server error", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "internal_error", err.Code)
	assert.Contains(t, err.Error(), "connection refused")

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Server error", e.Message)
}
