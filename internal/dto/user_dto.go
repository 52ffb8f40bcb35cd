package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleUserInfo holds user information obtained from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RegisterRequest creates a local teacher account.
// @Description Request body for local registration
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Name        string `json:"name" validate:"required,max=200"`
	Designation string `json:"designation,omitempty" validate:"max=200"`
	Department  string `json:"department,omitempty" validate:"max=200"`
}

// LoginRequest signs in with a local account.
// @Description Request body for local login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserProfileResponse defines the structure for a user's profile information.
type UserProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	Designation string    `json:"designation,omitempty"`
	Department  string    `json:"department,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateProfileRequest changes the editable profile fields.
// @Description Request body for profile updates
type UpdateProfileRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Designation string `json:"designation" validate:"max=200"`
	Department  string `json:"department" validate:"max=200"`
}

// UpdateRoleRequest is used by administrators to change a role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user guest"`
}

// TokenResponse represents the response containing access and refresh tokens.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is returned after a successful sign in.
type AuthResponse struct {
	TokenResponse
	User UserProfileResponse `json:"user"`
}

// RefreshTokenRequest represents the request body for refreshing a token.
// @Description Request body for refreshing JWT tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}
