package middleware

import (
	"context"
	"strings"

	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"    // Key for storing UserID in fiber.Ctx locals
	PrincipalKey        = "principal" // domain.Principal of the caller
)

// TokenValidator is the part of AuthService the middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

// Protected requires a valid access token and stores the caller's
// domain.Principal in the context.
func Protected(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := validator.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation error", zap.Error(err), zap.String("path", c.Path()))
			return unauthorized(c, "INVALID_TOKEN", "Token is invalid or expired")
		}
		if claims.TokenType != "access" {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: "Invalid token type: expected access, got " + claims.TokenType,
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(PrincipalKey, domain.Principal{UserID: claims.UserID, Role: domain.Role(claims.Role)})
		return c.Next()
	}
}

// RequireWriter rejects guests. Must run after Protected.
func RequireWriter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetPrincipal(c).CanWrite() {
			return domain.NewForbiddenError("Guests have read-only access")
		}
		return c.Next()
	}
}

// RequireAdmin rejects everyone but administrators. Must run after Protected.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetPrincipal(c).IsAdmin() {
			return domain.NewForbiddenError("Administrator role required")
		}
		return c.Next()
	}
}

// GetPrincipal returns the authenticated caller, or the zero Principal.
func GetPrincipal(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals(PrincipalKey).(domain.Principal)
	return p
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
