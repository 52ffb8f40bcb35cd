package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"

	// Store is not connected or not ready to serve requests
	CodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	// Question bank and paper errors
	CodeSubjectNotFound       ErrorCode = "SUBJECT_NOT_FOUND"
	CodeQuestionNotFound      ErrorCode = "QUESTION_NOT_FOUND"
	CodePaperNotFound         ErrorCode = "PAPER_NOT_FOUND"
	CodeUserNotFound          ErrorCode = "USER_NOT_FOUND"
	CodeInsufficientQuestions ErrorCode = "INSUFFICIENT_QUESTIONS"
	CodeParse                 ErrorCode = "PARSE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a detail value that is returned to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewConflictError(message string) *DomainError {
	return NewError(CodeConflict, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewStoreUnavailableError(cause error) *DomainError {
	return NewError(CodeStoreUnavailable, "Question store is not ready, retry once the backend is connected", cause)
}

func NewSubjectNotFoundError(subjectID string) *DomainError {
	return NewError(CodeSubjectNotFound, fmt.Sprintf("Subject not found with ID: %s", subjectID), nil).
		WithContext("subject_id", subjectID)
}

func NewQuestionNotFoundError(questionID int64) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("Question not found with ID: %d", questionID), nil).
		WithContext("question_id", questionID)
}

func NewPaperNotFoundError(paperID string) *DomainError {
	return NewError(CodePaperNotFound, fmt.Sprintf("Paper not found with ID: %s", paperID), nil).
		WithContext("paper_id", paperID)
}

func NewUserNotFoundError(userID string) *DomainError {
	return NewError(CodeUserNotFound, fmt.Sprintf("User not found with ID: %s", userID), nil)
}

// NewParseError reports a bulk upload file that could not be read as a whole.
func NewParseError(format string, cause error) *DomainError {
	return NewError(CodeParse, fmt.Sprintf("Failed to parse %s file", format), cause).
		WithContext("format", format)
}

// Shortfall describes one category that cannot satisfy the requested count.
type Shortfall struct {
	Category  QuestionCategory `json:"category"`
	Requested int              `json:"requested"`
	Available int              `json:"available"`
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%s requested %d, available %d", s.Category, s.Requested, s.Available)
}

// NewInsufficientQuestionsError reports every under-supplied category at once.
func NewInsufficientQuestionsError(subjectID string, shortfalls []Shortfall) *DomainError {
	parts := make([]string, len(shortfalls))
	for i, s := range shortfalls {
		parts[i] = s.String()
	}
	return NewError(CodeInsufficientQuestions,
		fmt.Sprintf("Insufficient questions for subject %s: %s", subjectID, strings.Join(parts, "; ")), nil).
		WithContext("subject_id", subjectID).
		WithContext("shortfalls", shortfalls)
}

// ShortfallsOf extracts the shortfall list from an InsufficientQuestions error.
func ShortfallsOf(err error) ([]Shortfall, bool) {
	domainErr, ok := err.(*DomainError)
	if !ok || domainErr.Code != CodeInsufficientQuestions {
		return nil, false
	}
	shortfalls, ok := domainErr.Context["shortfalls"].([]Shortfall)
	return shortfalls, ok
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned when one or more fields fail validation.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string, value interface{}) {
	*v = append(*v, ValidationError{Field: field, Message: message, Value: value})
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}, expected string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be %s", expected), Value: value}
}

func NewOutOfRangeError(field string, value interface{}, bound string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be %s", bound), Value: value}
}
