package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"examcraft/internal/config"
	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/logger"
	"examcraft/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
	jwtIssuer         = "examcraft"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (accessToken string, refreshToken string, user *domain.User, err error)
	Login(ctx context.Context, email, password string) (accessToken string, refreshToken string, user *domain.User, err error)
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string, receivedState string, expectedState string) (accessToken string, refreshToken string, user *domain.User, err error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, newRefreshToken string, err error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	oauth2Config *oauth2.Config
	appConfig    *config.Config
	userInfoURL  string
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}
	return &authServiceImpl{
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     appConfig.GoogleOAuth.ClientID,
			ClientSecret: appConfig.GoogleOAuth.ClientSecret,
			RedirectURL:  appConfig.GoogleOAuth.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		appConfig:   appConfig,
		userInfoURL: googleUserInfoURL,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (string, string, *domain.User, error) {
	user := domain.NewUser(req.Email, req.Name)
	user.Designation = strings.TrimSpace(req.Designation)
	user.Department = strings.TrimSpace(req.Department)

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return "", "", nil, storeError("Failed to look up user", err)
	}
	if existing != nil {
		return "", "", nil, domain.NewConflictError("An account already exists for " + user.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", nil, domain.NewInternalError("Failed to hash password", err)
	}
	user.PasswordHash = string(hash)

	if err := s.createUser(ctx, user); err != nil {
		return "", "", nil, err
	}
	logger.Get().Info("New user registered", zap.String("userID", user.ID), zap.String("role", string(user.Role)))
	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, string, *domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", "", nil, storeError("Failed to look up user", err)
	}
	if user == nil || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", nil, domain.NewUnauthorizedError("Invalid email or password")
	}
	logger.Get().Info("User logged in", zap.String("userID", user.ID))
	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code string, receivedState string, expectedState string) (string, string, *domain.User, error) {
	appLogger := logger.Get()
	if receivedState == "" || receivedState != expectedState {
		return "", "", nil, ErrInvalidAuthState
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return "", "", nil, fmt.Errorf("%w: failed to decode user info: %v", ErrFailedToGetUserInfo, err)
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return "", "", nil, fmt.Errorf("%w: google user info is incomplete", ErrFailedToGetUserInfo)
	}

	user, err := s.linkGoogleUser(ctx, userInfo)
	if err != nil {
		return "", "", nil, err
	}
	appLogger.Info("User logged in via Google OAuth", zap.String("userID", user.ID))
	return s.issueTokens(ctx, user)
}

// linkGoogleUser finds the account by Google id, then by email, and creates
// one when neither exists.
func (s *authServiceImpl) linkGoogleUser(ctx context.Context, info dto.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, storeError("Failed to look up user", err)
	}
	if user == nil {
		user, err = s.userRepo.GetUserByEmail(ctx, strings.ToLower(info.Email))
		if err != nil {
			return nil, storeError("Failed to look up user", err)
		}
	}

	if user == nil {
		user = domain.NewUser(info.Email, info.Name)
		user.GoogleID = info.ID
		if user.Name == "" {
			user.Name = user.Email
		}
		if err := s.createUser(ctx, user); err != nil {
			return nil, err
		}
		logger.Get().Info("New user created via Google OAuth", zap.String("userID", user.ID))
		return user, nil
	}

	user.GoogleID = info.ID
	if user.Name == "" {
		user.Name = info.Name
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, storeError("Failed to update user", err)
	}
	return user, nil
}

// createUser makes the first account an administrator.
func (s *authServiceImpl) createUser(ctx context.Context, user *domain.User) error {
	user.ID = util.NewULID()
	total, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return storeError("Failed to count users", err)
	}
	if total == 0 {
		user.Role = domain.RoleAdmin
	}
	if errs := user.Validate(); len(errs) > 0 {
		return errs
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return storeError("Failed to create user", err)
	}
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *domain.User) (string, string, *domain.User, error) {
	accessToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", nil, domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", nil, domain.NewInternalError("Failed to create refresh token", err)
	}
	return accessToken, refreshToken, user, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Role:      string(user.Role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    jwtIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func tokenSnippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	}, jwt.WithIssuer(jwtIssuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Debug("JWT token expired", zap.String("token_snippet", tokenSnippet(tokenString)))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

// RefreshToken reloads the user so role changes take effect on refresh.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", "", fmt.Errorf("%w: not a refresh token", ErrInvalidJWTToken)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", "", storeError("Failed to look up user", err)
	}
	if user == nil {
		logger.Get().Warn("User not found for refresh token", zap.String("userID", claims.UserID))
		return "", "", domain.NewUserNotFoundError(claims.UserID)
	}

	accessToken, refreshToken, _, err := s.issueTokens(ctx, user)
	if err != nil {
		return "", "", err
	}
	logger.Get().Info("JWT token refreshed", zap.String("userID", user.ID))
	return accessToken, refreshToken, nil
}
