package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("pet not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))

	wrapped := fmt.Errorf("load booking: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestInvalidSlot_CarriesReason(t *testing.T) {
	err := InvalidSlot(ReasonPastTime)

	assert.True(t, errors.Is(err, ErrInvalidSlot))
	reason, ok := ReasonOf(err)
	assert.True(t, ok)
	assert.Equal(t, ReasonPastTime, reason)

	_, ok = ReasonOf(Conflict("dup"))
	assert.False(t, ok)
}

func TestCode_HTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeNotFound:     http.StatusNotFound,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeInvalidSlot:  http.StatusBadRequest,
		CodeValidation:   http.StatusBadRequest,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, code.HTTPStatus(), string(code))
	}
}

func TestWithCause_KeepsCodeAndUnwraps(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := ErrConflict.WithCause(cause)

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeInternal, CodeOf(cause))
}
