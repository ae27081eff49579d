package routes

import (
	"context"

	"dorm-reservation-backend/bleve/controllers"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/middleware"
	"dorm-reservation-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func InitBleveRoutes(
	app *fiber.App,
	controller *controllers.SearchController,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
) {
	appContext := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	// Search is an operator tool
	api := app.Group("/api/v1/search",
		middleware.ProtectedRoute(appContext),
		middleware.RequireRoles(models.ManagerRole, models.AdminRole),
	)

	api.Get("/rooms", controller.SearchRoomsController)
	api.Get("/reservations", controller.SearchReservationsController)
}
