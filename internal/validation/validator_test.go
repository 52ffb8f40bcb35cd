package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin user guest"`
	Count    int    `query:"count" validate:"gte=0,lte=50"`
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.Struct(signup{Email: "a@b.co", Password: "longenough"}))

	errs := v.Struct(signup{Email: "nope", Password: "short", Role: "owner", Count: 51})
	require.Len(t, errs, 4)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "must be a valid email address", errs[0].Message)
	assert.Equal(t, "password", errs[1].Field)
	assert.Contains(t, errs[1].Message, "at least 8")
	assert.Equal(t, "role", errs[2].Field)
	assert.Equal(t, "must be one of admin, user, guest", errs[2].Message)
	assert.Equal(t, "count", errs[3].Field)

	errs = v.Struct(signup{})
	require.Len(t, errs, 2)
	assert.Equal(t, "is required", errs[0].Message)
}

func TestValidator_ValidatePaperID(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidatePaperID("01HQ3Z8Y4WJ6M2N5P7R9S1T3V5"))
	assert.Empty(t, v.ValidatePaperID("01hq3z8y4wj6m2n5p7r9s1t3v5"))
	assert.NotEmpty(t, v.ValidatePaperID(""))
	assert.NotEmpty(t, v.ValidatePaperID("paper-1"))
	assert.NotEmpty(t, v.ValidatePaperID("01HQ3Z8Y4WJ6M2N5P7R9S1T3VU"))
}

func TestValidator_ValidateVariant(t *testing.T) {
	v := NewValidator()
	for _, ok := range []string{"A", "b", " E "} {
		assert.Empty(t, v.ValidateVariant(ok), ok)
	}
	errs := v.ValidateVariant("F")
	require.Len(t, errs, 1)
	assert.Equal(t, "must be one of A, B, C, D, E", errs[0].Message)
}

func TestValidator_ValidateQuestionID(t *testing.T) {
	v := NewValidator()
	id, errs := v.ValidateQuestionID("42")
	assert.Empty(t, errs)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "4x", "1.5"} {
		_, errs = v.ValidateQuestionID(bad)
		assert.NotEmpty(t, errs, bad)
	}
}
