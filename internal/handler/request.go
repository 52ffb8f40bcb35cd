package handler

import (
	"strings"

	"examcraft/internal/domain"
	"examcraft/internal/middleware"
	"examcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var requestValidator = validation.NewValidator()

// bindJSON parses the body into req and runs its validate tags.
func bindJSON(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return domain.NewInvalidInputError("Invalid request body").WithContext("reason", err.Error())
	}
	if errs := requestValidator.Struct(req); len(errs) > 0 {
		return errs
	}
	return nil
}

// bindQuery parses query parameters into req and runs its validate tags.
func bindQuery(c *fiber.Ctx, req interface{}) error {
	if err := c.QueryParser(req); err != nil {
		return domain.NewInvalidInputError("Invalid query parameters").WithContext("reason", err.Error())
	}
	if errs := requestValidator.Struct(req); len(errs) > 0 {
		return errs
	}
	return nil
}

// questionID reads the id stored by ValidateQuestionID, parsing it when the
// route skipped that middleware.
func questionID(c *fiber.Ctx) (int64, error) {
	if id, ok := c.Locals(middleware.ValidatedQuestionIDKey).(int64); ok {
		return id, nil
	}
	id, errs := requestValidator.ValidateQuestionID(c.Params("id"))
	if len(errs) > 0 {
		return 0, errs
	}
	return id, nil
}

func variantParam(c *fiber.Ctx) string {
	if v, ok := c.Locals(middleware.ValidatedVariantKey).(string); ok {
		return v
	}
	return strings.ToUpper(c.Params("variant"))
}

func parseCategoryParam(raw string) (domain.QuestionCategory, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	cat, err := domain.ParseQuestionCategory(raw)
	if err != nil {
		return "", domain.ValidationErrors{domain.NewInvalidFormatError("category", raw,
			"one of mcqOneMark, _2Marks, _4Marks, _6Marks, _8Marks")}
	}
	return cat, nil
}

func principalID(c *fiber.Ctx) string {
	return middleware.GetPrincipal(c).UserID
}
