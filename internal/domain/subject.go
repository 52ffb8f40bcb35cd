package domain

import (
	"strings"
)

// Subject groups questions and papers.
type Subject struct {
	ID   string
	Name string
	Code string
}

// SubjectIDFromCode derives the default subject id: lowercase, whitespace runs joined by "-".
func SubjectIDFromCode(code string) string {
	return strings.ToLower(strings.Join(strings.Fields(code), "-"))
}

func (s *Subject) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
	s.ID = strings.TrimSpace(s.ID)
	if s.ID == "" {
		s.ID = SubjectIDFromCode(s.Code)
	}
}

func (s *Subject) Validate() ValidationErrors {
	var errs ValidationErrors
	if s.ID == "" {
		errs = append(errs, NewMissingFieldError("id"))
	}
	if s.Name == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if s.Code == "" {
		errs = append(errs, NewMissingFieldError("code"))
	}
	return errs
}
