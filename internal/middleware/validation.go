package middleware

import (
	"examcraft/internal/domain"
	"examcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedQuestionIDKey = "validated_question_id"
	ValidatedVariantKey    = "validated_variant"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidatePaperID rejects a malformed :id before the paper is looked up.
func (vm *ValidationMiddleware) ValidatePaperID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidatePaperID(c.Params("id")); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}

// ValidateVariant checks the :variant parameter and stores it upper-cased.
func (vm *ValidationMiddleware) ValidateVariant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		label := c.Params("variant")
		if errs := vm.validator.ValidateVariant(label); len(errs) > 0 {
			return errs
		}
		normalized, _ := domain.NormalizeVariantLabel(label)
		c.Locals(ValidatedVariantKey, normalized)
		return c.Next()
	}
}

// ValidateQuestionID parses the numeric :id parameter.
func (vm *ValidationMiddleware) ValidateQuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errs := vm.validator.ValidateQuestionID(c.Params("id"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedQuestionIDKey, id)
		return c.Next()
	}
}
