package handler

import (
	"examcraft/internal/domain"
	"examcraft/internal/dto"
	"examcraft/internal/middleware"
	"examcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.UserContext(), principalID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfileResponse(user))
}

// UpdateMyProfile changes name, designation and department.
// @Summary Update My Profile
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateMyProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateProfile(c.UserContext(), principalID(c), domain.UserProfile{
		Name:        req.Name,
		Designation: req.Designation,
		Department:  req.Department,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfileResponse(user))
}

// ChangeRole sets the role of another account.
// @Summary Change a user's role
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body dto.UpdateRoleRequest true "Role"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /users/{id}/role [put]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.userService.ChangeRole(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfileResponse(user))
}
