package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsWrapKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		code string
	}{
		{"not found", NewNotFoundError("Department", 7), ErrNotFound, CodeNotFound},
		{"reference", NewReferenceNotFoundError("Department", 7), ErrReferenceNotFound, CodeReferenceNotFound},
		{"duplicate", NewDuplicateKeyError("name", "Physics"), ErrDuplicateKey, CodeDuplicateKey},
		{"role", NewUnknownRoleError("DEAN"), ErrUnknownRole, CodeUnknownRole},
		{"forbidden", NewForbiddenError("nope"), ErrForbidden, CodeForbidden},
		{"validation", NewValidationError("bad"), ErrValidationFailed, CodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)

			var ce *CustomError
			require.True(t, errors.As(wrapped, &ce))
			assert.Equal(t, tt.code, ce.Code)
		})
	}
}

func TestDuplicateKeyDetails(t *testing.T) {
	err := NewDuplicateKeyError("code", "CS101")
	assert.Equal(t, "code 'CS101' already exists", err.Error())

	field, ok := Detail(err, "field")
	require.True(t, ok)
	assert.Equal(t, "code", field)

	_, ok = Detail(errors.New("plain"), "field")
	assert.False(t, ok)
}

func TestUnauthenticatedKeepsReason(t *testing.T) {
	err := NewUnauthenticatedError(ErrTokenExpired)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.True(t, Is(err, ErrForbidden, ErrTokenExpired))
}
