package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Kind(t *testing.T) {
	cases := []struct {
		code ErrorCode
		kind Kind
	}{
		{ErrUnauthorized, KindUnauthenticated},
		{ErrTokenExpired, KindUnauthenticated},
		{ErrNotFound, KindNotFound},
		{ErrForbidden, KindNotFound},
		{ErrInvalidInput, KindValidationFailure},
		{ErrAlreadyExists, KindValidationFailure},
		{ErrRemoteFailure, KindRemoteFailure},
		{ErrInternalServer, KindRemoteFailure},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, NewAppError(tc.code, "x", nil).Kind(), "code %d", tc.code)
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Remote("failed to list tasks", cause)

	assert.Equal(t, "failed to list tasks: connection refused", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "task not found", NotFound("task").Error())
}
