package service

import (
	"context"
	"strings"
	"time"

	"examcraft/internal/domain"
	"examcraft/internal/logger"

	"go.uber.org/zap"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, profile domain.UserProfile) (*domain.User, error)
	ChangeRole(ctx context.Context, principal domain.Principal, userID string, role domain.Role) (*domain.User, error)
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError("Failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, profile domain.UserProfile) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(profile.Name)
	user.Designation = strings.TrimSpace(profile.Designation)
	user.Department = strings.TrimSpace(profile.Department)
	if errs := user.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return s.save(ctx, user)
}

// ChangeRole is restricted to administrators, who cannot demote themselves.
func (s *userServiceImpl) ChangeRole(ctx context.Context, principal domain.Principal, userID string, role domain.Role) (*domain.User, error) {
	if !principal.IsAdmin() {
		return nil, domain.NewForbiddenError("Only administrators can change roles")
	}
	if !role.IsValid() {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("role", string(role), "one of admin, user, guest")}
	}
	if principal.UserID == userID && role != domain.RoleAdmin {
		return nil, domain.NewInvalidInputError("Administrators cannot remove their own admin role")
	}
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user, err = s.save(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Changed user role",
		zap.String("userID", userID),
		zap.String("role", string(role)),
		zap.String("by", principal.UserID))
	return user, nil
}

func (s *userServiceImpl) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, storeError("Failed to update user", err)
	}
	return user, nil
}
