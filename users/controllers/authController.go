package controllers

import (
	"context"
	"time"

	"dorm-reservation-backend/audit"
	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/middleware"
	"dorm-reservation-backend/token"
	"dorm-reservation-backend/users/repositories"
	"dorm-reservation-backend/users/services"
	"dorm-reservation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxLoginAttempts     = 5
	lockoutDuration      = 15 * time.Minute
	accessTokenDuration  = 15 * time.Minute
	refreshTokenDuration = 7 * 24 * time.Hour
)

type AuthController struct {
	UserRepo    repositories.UserRepository
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
	DB          *gorm.DB
}

// RegisterUser creates a customer account. Staff accounts are only created
// by an admin through the user management endpoints.
func (ac *AuthController) RegisterUser(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	if errMsg := services.ValidateEmail(req.Email, ac.UserRepo); errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Registration failed",
			"data":    nil,
			"error":   errMsg,
		})
	}
	if errMsg := services.ValidatePassword(req.Password); errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Registration failed",
			"data":    nil,
			"error":   errMsg,
		})
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		config.Logger.Error("Failed to hash password during registration", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	user, err := ac.UserRepo.CreateUser(&models.User{
		Email:    req.Email,
		Password: hashed,
		Role:     models.CustomerRole,
	})
	if err != nil {
		config.Logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed",
			"data":    nil,
			"error":   "Could not create the account.",
		})
	}

	audit.Record(ac.DB, &user.ID, "user_registered", map[string]interface{}{
		"email": user.Email,
	}, utils.ClientIP(c))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"data":    user,
		"error":   nil,
	})
}

// LoginUser authenticates with email and password, issues the token pair as
// cookies, and enforces the failed-attempt lockout. Failure responses never
// reveal whether the email exists.
func (ac *AuthController) LoginUser(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing login request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	invalidCredentials := func() error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"data":    nil,
			"error":   "Invalid email or password.",
		})
	}

	user, err := ac.UserRepo.GetUserByEmail(req.Email)
	if err != nil {
		config.Logger.Error("Login attempt: database error", zap.String("email", req.Email), zap.Error(err))
		return invalidCredentials()
	}
	if user == nil || user.Disabled {
		config.Logger.Warn("Login attempt for unknown or disabled account", zap.String("email", req.Email))
		return invalidCredentials()
	}

	if user.IsLocked(time.Now().UTC()) {
		config.Logger.Warn("Login attempt on locked account", zap.String("email", req.Email))
		return c.Status(fiber.StatusLocked).JSON(fiber.Map{
			"message": "Account locked",
			"data":    nil,
			"error":   "Too many failed attempts. Try again later.",
		})
	}

	if !services.CheckPasswordHash(req.Password, user.Password) {
		if err := ac.UserRepo.RecordLoginFailure(user, maxLoginAttempts, lockoutDuration); err != nil {
			config.Logger.Error("Failed to record login failure", zap.String("email", req.Email), zap.Error(err))
		}
		audit.Record(ac.DB, &user.ID, "login_failed", map[string]interface{}{
			"failed_attempts": user.FailedAttempts,
		}, utils.ClientIP(c))
		return invalidCredentials()
	}

	ip := utils.ClientIP(c)
	if err := ac.UserRepo.RecordLoginSuccess(user, ip); err != nil {
		config.Logger.Error("Failed to record login success", zap.String("email", req.Email), zap.Error(err))
	}

	accessToken, err := ac.PasetoMaker.CreateToken(user.ID, user.Email, user.Role, accessTokenDuration)
	if err != nil {
		config.Logger.Error("Could not create access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	refreshToken, err := ac.PasetoMaker.CreateToken(user.ID, user.Email, user.Role, refreshTokenDuration)
	if err != nil {
		config.Logger.Error("Could not create refresh token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	err = ac.RedisClient.Set(ac.Ctx, "refresh_token:"+refreshToken, user.ID.String(), refreshTokenDuration).Err()
	if err != nil {
		config.Logger.Error("Error storing refresh token in Redis", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	middleware.SetAuthCookies(c, accessToken, refreshToken)

	audit.Record(ac.DB, &user.ID, "login_success", nil, ip)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data":    user,
		"error":   nil,
	})
}

// LogoutUser invalidates the refresh token and expires both cookies.
func (ac *AuthController) LogoutUser(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		if err := ac.RedisClient.Del(ac.Ctx, "refresh_token:"+refreshToken).Err(); err != nil {
			config.Logger.Error("Failed to delete refresh token from Redis during logout", zap.Error(err))
		}
	}

	middleware.ClearAuthCookies(c)

	config.Logger.Info("User logged out", zap.String("client_ip", c.IP()))
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
		"data":    nil,
		"error":   nil,
	})
}

// ChangePassword verifies the current password before applying the new one.
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	user, err := ac.UserRepo.GetUserByID(payload.UserID.String())
	if err != nil || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Account not found.",
		})
	}

	if !services.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Password change failed",
			"data":    nil,
			"error":   "Current password is incorrect.",
		})
	}

	if errMsg := services.ValidatePassword(req.NewPassword); errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Password change failed",
			"data":    nil,
			"error":   errMsg,
		})
	}

	if services.CheckPasswordHash(req.NewPassword, user.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Password change failed",
			"data":    nil,
			"error":   "New password must be different from the current password.",
		})
	}

	hashed, err := services.HashPassword(req.NewPassword)
	if err != nil {
		config.Logger.Error("Failed to hash new password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	now := time.Now().UTC()
	updated, err := ac.UserRepo.UpdateUserFields(user.ID.String(), map[string]interface{}{
		"password":            hashed,
		"password_changed_at": now,
	})
	if err != nil || !updated {
		config.Logger.Error("Failed to update password", zap.String("user_id", user.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Password change failed",
			"data":    nil,
			"error":   "Could not update the password.",
		})
	}

	audit.Record(ac.DB, &user.ID, "password_changed", nil, utils.ClientIP(c))

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
		"data":    nil,
		"error":   nil,
	})
}
