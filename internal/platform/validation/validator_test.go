package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/apperr"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,numeric,len=6"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(loginRequest{Email: "e5@spa.test", Password: "s3cretpass", Phone: "123456"}))
}

func TestValidate_DetailsUseJSONNames(t *testing.T) {
	v := New()
	err := v.Validate(loginRequest{Email: "nope", Phone: "12ab"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "must be a valid email address", e.Details["email"])
	assert.Equal(t, "is required", e.Details["password"])
	assert.Equal(t, "must contain only digits", e.Details["phone"])
}

func TestVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("status", "Pending", "oneof=Pending In-progress Completed"))

	err := v.Var("status", "Done", "oneof=Pending In-progress Completed")
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Contains(t, e.Details["status"], "must be one of")
}
