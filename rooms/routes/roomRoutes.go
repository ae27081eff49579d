package router

import (
	"context"

	bleve_repositories "dorm-reservation-backend/bleve/repositories"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/middleware"
	"dorm-reservation-backend/rooms/controllers"
	"dorm-reservation-backend/rooms/repositories"
	"dorm-reservation-backend/rooms/services"
	"dorm-reservation-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func InitRoomRoutes(
	app *fiber.App,
	roomRepo repositories.RoomRepository,
	roomService *services.RoomService,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
	bleveRepo bleve_repositories.BleveRepositoryInterface,
	db *gorm.DB,
) {
	roomController := &controllers.RoomController{
		RoomService: roomService,
		RoomRepo:    roomRepo,
		DB:          db,
		Ctx:         ctx,
		RedisClient: redisClient,
		BleveRepo:   bleveRepo,
	}

	appContext := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	// Browsing rooms requires a login but no particular role
	roomRoutes := app.Group("/api/v1/rooms", middleware.ProtectedRoute(appContext))
	{
		roomRoutes.Get("/", roomController.GetFilteredRoomsController)
		roomRoutes.Get("/active", roomController.GetActiveRoomsController)
		roomRoutes.Get("/:id", roomController.GetSingleRoomController)
	}

	// Registry management is staff-only
	staffRoutes := app.Group("/api/v1/rooms",
		middleware.ProtectedRoute(appContext),
		middleware.RequireRoles(models.ManagerRole, models.AdminRole),
	)
	{
		staffRoutes.Post("/", roomController.CreateRoomController)
		staffRoutes.Patch("/:id", roomController.UpdateRoomController)
		staffRoutes.Delete("/:id", roomController.DeleteRoomController)
		staffRoutes.Get("/export/excel", roomController.ExportRoomsController)
	}
}
