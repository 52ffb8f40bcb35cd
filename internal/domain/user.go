package domain

import (
	"strings"
	"time"
)

// Role of a teacher account
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// User represents a teacher account
type User struct {
	ID           string
	Email        string
	Name         string
	GoogleID     string
	PasswordHash string
	Designation  string
	Department   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User instance
func NewUser(email, name string) *User {
	now := time.Now()
	return &User{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      strings.TrimSpace(name),
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the user
func (u *User) Validate() ValidationErrors {
	var errs ValidationErrors
	if u.Email == "" {
		errs = append(errs, NewMissingFieldError("email"))
	}
	if u.Name == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if !u.Role.IsValid() {
		errs = append(errs, NewInvalidFormatError("role", string(u.Role), "one of admin, user, guest"))
	}
	return errs
}

// UserProfile holds the editable profile fields of a teacher.
type UserProfile struct {
	Name        string
	Designation string
	Department  string
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanWrite reports whether the caller may change the question bank or generate papers.
func (p Principal) CanWrite() bool {
	return p.Role == RoleAdmin || p.Role == RoleUser
}
