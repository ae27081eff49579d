package router

import (
	"context"

	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/middleware"
	"dorm-reservation-backend/token"
	"dorm-reservation-backend/users/controllers"
	"dorm-reservation-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func InitUserRoutes(
	app *fiber.App,
	userRepo repositories.UserRepository,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
	db *gorm.DB,
) {
	authController := &controllers.AuthController{
		UserRepo:    userRepo,
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
		DB:          db,
	}
	userController := &controllers.UserController{
		UserRepo: userRepo,
		DB:       db,
	}

	appContext := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	loginLimiter := middleware.NewLoginRateLimiter(1, 5)

	// Public routes (no authentication required)
	publicRoutes := app.Group("/api/v1")
	{
		publicRoutes.Post("/auth/register", loginLimiter.Handler(), authController.RegisterUser)
		publicRoutes.Post("/auth/login", loginLimiter.Handler(), authController.LoginUser)
		publicRoutes.Post("/auth/logout", authController.LogoutUser)
	}

	// Authenticated routes
	protectedRoutes := app.Group("/api/v1", middleware.ProtectedRoute(appContext))
	{
		protectedRoutes.Post("/auth/change-password", authController.ChangePassword)
	}

	// Admin-only user management
	adminRoutes := app.Group("/api/v1/users",
		middleware.ProtectedRoute(appContext),
		middleware.RequireRoles(models.AdminRole),
	)
	{
		adminRoutes.Get("/", userController.GetFilteredUsersController)
		adminRoutes.Get("/:id", userController.GetSingleUserController)
		adminRoutes.Patch("/:id/role", userController.UpdateUserRoleController)
		adminRoutes.Patch("/:id/disabled", userController.SetUserDisabledController)
	}
}
