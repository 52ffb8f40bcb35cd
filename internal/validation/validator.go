// Package validation turns request struct tags and path parameters into
// domain.ValidationErrors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"examcraft/internal/domain"

	"github.com/go-playground/validator/v10"
)

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their json name.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{validate: v}
}

// Struct checks the validate tags of a request DTO.
func (v *Validator) Struct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Message: err.Error()}}
	}
	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, translate(fe))
	}
	return out
}

func translate(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "email":
		return domain.NewInvalidFormatError(field, fe.Value(), "a valid email address")
	case "min", "gte":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return domain.NewOutOfRangeError(field, fe.Value(), "at least "+fe.Param()+" characters long")
		}
		return domain.NewOutOfRangeError(field, fe.Value(), "at least "+fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return domain.NewOutOfRangeError(field, nil, "at most "+fe.Param()+" characters long")
		}
		return domain.NewOutOfRangeError(field, fe.Value(), "at most "+fe.Param())
	case "oneof":
		return domain.NewInvalidFormatError(field, fe.Value(), "one of "+strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return domain.ValidationError{Field: field, Message: fmt.Sprintf("failed the %q check", fe.Tag()), Value: fe.Value()}
}

// ValidatePaperID checks that a paper id is a ULID.
func (v *Validator) ValidatePaperID(id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	if !ulidPattern.MatchString(strings.ToUpper(id)) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", id, "a 26 character ULID")}
	}
	return nil
}

// ValidateVariant checks a set label such as "A" or "c".
func (v *Validator) ValidateVariant(label string) domain.ValidationErrors {
	if _, ok := domain.NormalizeVariantLabel(label); !ok {
		return domain.ValidationErrors{domain.NewInvalidFormatError("variant", label,
			"one of "+strings.Join(domain.VariantLabels(), ", "))}
	}
	return nil
}

// ValidateQuestionID checks a numeric question id path parameter.
func (v *Validator) ValidateQuestionID(raw string) (int64, domain.ValidationErrors) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("id", raw, "a positive integer")}
	}
	return id, nil
}
