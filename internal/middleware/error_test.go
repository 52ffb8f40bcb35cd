package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"examcraft/internal/domain"
	"examcraft/internal/middleware"
	"examcraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, handlerErr error) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error { return handlerErr })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.NewPaperNotFoundError("p1"), 404, "PAPER_NOT_FOUND"},
		{domain.NewSubjectNotFoundError("cs101"), 404, "SUBJECT_NOT_FOUND"},
		{domain.NewQuestionNotFoundError(9), 404, "QUESTION_NOT_FOUND"},
		{domain.NewNotFoundError("gone"), 404, "NOT_FOUND"},
		{domain.NewInvalidInputError("bad"), 400, "INVALID_INPUT"},
		{domain.NewParseError("csv", errors.New("eof")), 400, "PARSE_ERROR"},
		{domain.NewConflictError("dup"), 409, "CONFLICT"},
		{domain.NewForbiddenError("no"), 403, "FORBIDDEN"},
		{domain.NewUnauthorizedError("who"), 401, "UNAUTHORIZED"},
		{domain.NewStoreUnavailableError(errors.New("dial tcp")), 503, "STORE_UNAVAILABLE"},
		{domain.NewInternalError("boom", nil), 500, "INTERNAL_ERROR"},
		{fmt.Errorf("wrapped: %w", service.ErrInvalidJWTToken), 401, "UNAUTHORIZED"},
		{service.ErrInvalidAuthState, 401, "UNAUTHORIZED"},
		{fmt.Errorf("%w: timeout", service.ErrFailedToExchangeToken), 502, "OAUTH_PROVIDER_ERROR"},
		{fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), 413, "HTTP_ERROR"},
		{errors.New("anything else"), 500, "INTERNAL_ERROR"},
	}
	for _, tc := range tests {
		status, body := respond(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, body["code"], tc.err.Error())
	}
}

func TestErrorHandler_InsufficientQuestionsCarriesShortfalls(t *testing.T) {
	err := domain.NewInsufficientQuestionsError("cs101", []domain.Shortfall{
		{Category: domain.CategoryMCQ, Requested: 12, Available: 10},
		{Category: domain.CategorySixMarks, Requested: 3, Available: 2},
	})
	status, body := respond(t, err)
	assert.Equal(t, 422, status)
	assert.Equal(t, "INSUFFICIENT_QUESTIONS", body["code"])

	details := body["details"].(map[string]interface{})
	shortfalls := details["shortfalls"].([]interface{})
	require.Len(t, shortfalls, 2)
	first := shortfalls[0].(map[string]interface{})
	assert.Equal(t, "mcqOneMark", first["category"])
	assert.Equal(t, float64(12), first["requested"])
	assert.Equal(t, float64(10), first["available"])
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	status, body := respond(t, domain.ValidationErrors{
		domain.NewMissingFieldError("subject_id"),
		domain.NewOutOfRangeError("exam_duration", 0, "a positive number of minutes"),
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Len(t, body["errors"], 2)
}
