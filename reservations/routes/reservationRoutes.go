package router

import (
	"context"

	bleve_repositories "dorm-reservation-backend/bleve/repositories"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/middleware"
	"dorm-reservation-backend/reservations/controllers"
	"dorm-reservation-backend/reservations/services"
	"dorm-reservation-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func InitReservationRoutes(
	app *fiber.App,
	bookingService *services.BookingService,
	availabilityService *services.AvailabilityService,
	notifier services.ReservationNotifier,
	bleveRepo bleve_repositories.BleveRepositoryInterface,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
	db *gorm.DB,
) {
	reservationController := &controllers.ReservationController{
		BookingService:      bookingService,
		AvailabilityService: availabilityService,
		Notifier:            notifier,
		BleveRepo:           bleveRepo,
		DB:                  db,
		Ctx:                 ctx,
		RedisClient:         redisClient,
	}

	appContext := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	// Any authenticated user
	reservationRoutes := app.Group("/api/v1/reservations", middleware.ProtectedRoute(appContext))
	{
		reservationRoutes.Post("/", reservationController.CreateReservationController)
		reservationRoutes.Get("/mine", reservationController.GetMyReservationsController)
		reservationRoutes.Get("/:id", reservationController.GetSingleReservationController)
		reservationRoutes.Delete("/:id", reservationController.DeleteReservationController)
	}

	// Availability is read-only and open to any authenticated user
	availabilityRoutes := app.Group("/api/v1/rooms", middleware.ProtectedRoute(appContext))
	{
		availabilityRoutes.Get("/:id/availability", reservationController.GetRoomCalendarController)
		availabilityRoutes.Get("/:id/available-ranges", reservationController.GetAvailableRangesController)
	}

	// Staff-only reservation management
	staffRoutes := app.Group("/api/v1/reservations",
		middleware.ProtectedRoute(appContext),
		middleware.RequireRoles(models.ManagerRole, models.AdminRole),
	)
	{
		staffRoutes.Get("/", reservationController.GetFilteredReservationsController)
		staffRoutes.Patch("/:id/status", reservationController.UpdateReservationStatusController)
		staffRoutes.Get("/export/excel", reservationController.ExportReservationsController)
	}

	staffAvailabilityRoutes := app.Group("/api/v1/rooms",
		middleware.ProtectedRoute(appContext),
		middleware.RequireRoles(models.ManagerRole, models.AdminRole),
	)
	{
		staffAvailabilityRoutes.Get("/:id/availability/debug", reservationController.DebugRoomAvailabilityController)
	}
}
