package validator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/validator"
)

func TestVerdictErr(t *testing.T) {
	t.Parallel()
	f := form.Field{Name: "email", Attrs: form.Attrs{form.AttrLabel: "E-mail"}}

	assert.Nil(t, validator.Verdict{Valid: true, Field: f}.Err())

	err := validator.Verdict{Field: f, Message: "Invalid format", Rule: validator.KindPattern}.Err()
	assert.Equal(t, &validator.ValidationError{Field: "email", Label: "E-mail", Message: "Invalid format", Rule: "pattern"}, err)
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()
	errs := validator.FromVerdicts(
		validator.Verdict{Valid: true, Field: form.Field{Name: "name"}},
		validator.Verdict{Field: form.Field{Name: "email"}, Message: "Please enter a valid email address", Rule: validator.KindEmail},
		validator.Verdict{Field: form.Field{Name: "pw"}, Message: "Too short", Rule: validator.KindMinLength},
	)

	assert.Len(t, errs, 2)
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("name"))
	assert.Equal(t, []string{"Too short"}, errs.Get("pw"))
	assert.Equal(t, []string{"email", "pw"}, errs.Fields())
	assert.Equal(t, "validation failed: email: Please enter a valid email address; pw: Too short", errs.Error())

	wrapped := fmt.Errorf("submit: %w", errs)
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Equal(t, errs, validator.ExtractValidationErrors(wrapped))
	assert.False(t, validator.IsValidationError(nil))
	assert.True(t, validator.FromVerdicts().IsEmpty())
}
