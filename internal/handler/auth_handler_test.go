package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:        "teacher-1",
		Email:     "ada@example.edu",
		Name:      "Ada",
		Role:      role,
		CreatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
	}
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register(t *testing.T) {
	svc := newTestServices()
	svc.auth.RegisterFunc = func(ctx context.Context, req dto.RegisterRequest) (string, string, *domain.User, error) {
		assert.Equal(t, "ada@example.edu", req.Email)
		return "access-token", "refresh-token", testUser(domain.RoleAdmin), nil
	}

	resp, body := call(t, svc.app(), postJSON("/api/auth/register", `{"email":"ada@example.edu","password":"correct horse","name":"Ada"}`), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var got dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "access-token", got.AccessToken)
	assert.Equal(t, "refresh-token", got.RefreshToken)
	assert.Equal(t, "admin", got.User.Role)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	svc := newTestServices()
	resp, body := call(t, svc.app(), postJSON("/api/auth/register", `{"email":"not-an-email","password":"short","name":""}`), "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got struct {
		Code   string                   `json:"code"`
		Errors []domain.ValidationError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "VALIDATION_ERROR", got.Code)
	fields := make([]string, 0, len(got.Errors))
	for _, e := range got.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password", "name"}, fields)
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		loginErr   error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"bad credentials", domain.NewUnauthorizedError("Invalid email or password"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices()
			svc.auth.LoginFunc = func(ctx context.Context, email, password string) (string, string, *domain.User, error) {
				if tt.loginErr != nil {
					return "", "", nil, tt.loginErr
				}
				return "a", "r", testUser(domain.RoleUser), nil
			}

			resp, body := call(t, svc.app(), postJSON("/api/auth/login", `{"email":"ada@example.edu","password":"pw"}`), "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(body))
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := newTestServices()
	svc.auth.RefreshTokenFunc = func(ctx context.Context, token string) (string, string, error) {
		if token != "good-refresh" {
			return "", "", service.ErrInvalidJWTToken
		}
		return "new-access", "new-refresh", nil
	}

	resp, body := call(t, svc.app(), postJSON("/api/auth/refresh", `{"refresh_token":"good-refresh"}`), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"access_token":"new-access","refresh_token":"new-refresh"}`, string(body))

	resp, _ = call(t, svc.app(), postJSON("/api/auth/refresh", `{"refresh_token":"stale"}`), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_GoogleLoginSetsStateCookie(t *testing.T) {
	svc := newTestServices()
	resp, _ := call(t, svc.app(), httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil), "")

	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	var state string
	for _, c := range resp.Cookies() {
		if c.Name == "oauthstate" {
			state = c.Value
		}
	}
	require.NotEmpty(t, state)
	assert.Contains(t, resp.Header.Get("Location"), "state="+state)
}

func TestAuthHandler_GoogleCallback(t *testing.T) {
	t.Run("missing code", func(t *testing.T) {
		svc := newTestServices()
		resp, body := call(t, svc.app(), httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=x", nil), "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(body), "MISSING_CODE")
	})

	t.Run("state mismatch", func(t *testing.T) {
		svc := newTestServices()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=c&state=from-query", nil)
		req.AddCookie(&http.Cookie{Name: "oauthstate", Value: "from-cookie"})
		resp, body := call(t, svc.app(), req, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(body), "INVALID_STATE")
	})

	t.Run("success", func(t *testing.T) {
		svc := newTestServices()
		svc.auth.GoogleCallbackFunc = func(ctx context.Context, code, received, expected string) (string, string, *domain.User, error) {
			assert.Equal(t, "c", code)
			assert.Equal(t, received, expected)
			return "a", "r", testUser(domain.RoleUser), nil
		}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=c&state=s1", nil)
		req.AddCookie(&http.Cookie{Name: "oauthstate", Value: "s1"})
		resp, body := call(t, svc.app(), req, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.Contains(t, string(body), `"access_token":"a"`)
	})

	t.Run("provider failure", func(t *testing.T) {
		svc := newTestServices()
		svc.auth.GoogleCallbackFunc = func(ctx context.Context, code, received, expected string) (string, string, *domain.User, error) {
			return "", "", nil, service.ErrFailedToExchangeToken
		}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=c&state=s1", nil)
		req.AddCookie(&http.Cookie{Name: "oauthstate", Value: "s1"})
		resp, body := call(t, svc.app(), req, "")
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Contains(t, string(body), "OAUTH_PROVIDER_ERROR")
	})
}

func TestAuthHandler_LogoutRequiresToken(t *testing.T) {
	svc := newTestServices()
	resp, _ := call(t, svc.app(), httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := call(t, svc.app(), httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), "teacher")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Logout successful")
}
