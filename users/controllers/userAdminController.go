package controllers

import (
	"dorm-reservation-backend/audit"
	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/token"
	"dorm-reservation-backend/users/repositories"
	"dorm-reservation-backend/utils"
	"dorm-reservation-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserController struct {
	UserRepo repositories.UserRepository
	DB       *gorm.DB
}

func (uc *UserController) GetFilteredUsersController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize
	users, total, err := uc.UserRepo.GetFilteredUsers(params.Filters, true, params.PageSize, offset)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch users",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Users fetched successfully",
		"data":    pagination.NewPaginatedResponse(c, users, total, params),
		"error":   nil,
	})
}

func (uc *UserController) GetSingleUserController(c *fiber.Ctx) error {
	user, err := uc.UserRepo.GetUserByID(c.Params("id"))
	if err != nil {
		config.Logger.Error("Failed to fetch user", zap.String("id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch user",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"data":    nil,
			"error":   "No user with that id.",
		})
	}
	return c.JSON(fiber.Map{
		"message": "User fetched successfully",
		"data":    user,
		"error":   nil,
	})
}

// UpdateUserRoleController changes a user's role. Admin only; an admin
// cannot demote themselves, so there is always at least one admin left.
func (uc *UserController) UpdateUserRoleController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	type UpdateRoleRequest struct {
		Role models.Role `json:"role"`
	}
	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	if req.Role != models.CustomerRole && req.Role != models.ManagerRole && req.Role != models.AdminRole {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid role",
			"data":    nil,
			"error":   "Role must be customer, manager or admin.",
		})
	}

	targetID := c.Params("id")
	if targetID == payload.UserID.String() && req.Role != models.AdminRole {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid role change",
			"data":    nil,
			"error":   "You cannot demote your own account.",
		})
	}

	updated, err := uc.UserRepo.UpdateUserFields(targetID, map[string]interface{}{
		"role": req.Role,
	})
	if err != nil {
		config.Logger.Error("Failed to update user role", zap.String("id", targetID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update role",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"data":    nil,
			"error":   "No user with that id.",
		})
	}

	audit.Record(uc.DB, &payload.UserID, "user_role_updated", map[string]interface{}{
		"target_user_id": targetID,
		"new_role":       string(req.Role),
	}, utils.ClientIP(c))

	return c.JSON(fiber.Map{
		"message": "Role updated successfully",
		"data":    nil,
		"error":   nil,
	})
}

// SetUserDisabledController enables or disables an account. Disabled users
// cannot log in; their existing refresh tokens die on next rotation.
func (uc *UserController) SetUserDisabledController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	type DisableRequest struct {
		Disabled bool `json:"disabled"`
	}
	var req DisableRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	targetID := c.Params("id")
	if targetID == payload.UserID.String() && req.Disabled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "You cannot disable your own account.",
		})
	}

	updated, err := uc.UserRepo.UpdateUserFields(targetID, map[string]interface{}{
		"disabled": req.Disabled,
	})
	if err != nil {
		config.Logger.Error("Failed to update user disabled flag", zap.String("id", targetID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update user",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"data":    nil,
			"error":   "No user with that id.",
		})
	}

	audit.Record(uc.DB, &payload.UserID, "user_disabled_updated", map[string]interface{}{
		"target_user_id": targetID,
		"disabled":       req.Disabled,
	}, utils.ClientIP(c))

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    nil,
		"error":   nil,
	})
}
