package main

import (
	"context"

	bleveControllers "dorm-reservation-backend/bleve/controllers"
	bleveRepositories "dorm-reservation-backend/bleve/repositories"
	bleveRoutes "dorm-reservation-backend/bleve/routes"
	bleveServices "dorm-reservation-backend/bleve/services"
	"dorm-reservation-backend/config"
	"dorm-reservation-backend/internal/bootstrap"
	"dorm-reservation-backend/middleware"
	reservations_repositories "dorm-reservation-backend/reservations/repositories"
	reservation_routes "dorm-reservation-backend/reservations/routes"
	reservations_services "dorm-reservation-backend/reservations/services"
	rooms_repositories "dorm-reservation-backend/rooms/repositories"
	room_routes "dorm-reservation-backend/rooms/routes"
	rooms_services "dorm-reservation-backend/rooms/services"
	"dorm-reservation-backend/tasks"
	"dorm-reservation-backend/token"
	users_repositories "dorm-reservation-backend/users/repositories"
	user_routes "dorm-reservation-backend/users/routes"
	"dorm-reservation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Warn("No .env file found, relying on process environment", zap.Error(err))
	}

	app := fiber.New()

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisAddr := config.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379")
	redisClient := config.InitRedisServer(ctx)

	// Asynq runs its own redis connection alongside the shared client
	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.GetEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       0,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	tokenKey := config.GetEnv("TOKEN_SYMMETRIC_KEY")
	tokenMaker, err := token.NewPasetoMaker(tokenKey)
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	indexPath := config.GetEnvOrDefault("BLEVE_INDEX_PATH", "./bleve_data")

	// Initialize the mailer
	utils.InitializeMailer()

	// Serve generated export files
	app.Static("/public", "./public")

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	userRepo := users_repositories.NewUserRepository(db)
	roomRepo := rooms_repositories.NewRoomRepository(db)
	reservationRepo := reservations_repositories.NewReservationRepository(db)
	bleveServiceRepo, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)

	// Services
	notifier := tasks.NewNotifier(asynqClient)
	roomService := rooms_services.NewRoomService(roomRepo, reservationRepo)
	availabilityService := reservations_services.NewAvailabilityService(reservationRepo, roomRepo)
	bookingService := reservations_services.NewBookingService(db, reservationRepo, roomRepo, notifier)

	// Background email worker
	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{Concurrency: 5})
	asynqMux := asynq.NewServeMux()
	asynqMux.HandleFunc(tasks.TypeReservationEmail, tasks.HandleReservationEmailTask)
	go func() {
		if err := asynqServer.Run(asynqMux); err != nil {
			config.Logger.Fatal("Asynq worker failed", zap.Error(err))
		}
	}()

	// Routes
	user_routes.InitUserRoutes(app, userRepo, ctx, redisClient, tokenMaker, db)
	room_routes.InitRoomRoutes(app, roomRepo, roomService, ctx, redisClient, tokenMaker, bleveInterfaceRepo, db)
	reservation_routes.InitReservationRoutes(app, bookingService, availabilityService, notifier, bleveInterfaceRepo, ctx, redisClient, tokenMaker, db)

	// Bleve Routes
	bleveController := bleveControllers.NewSearchController(bleveServiceRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController, ctx, redisClient, tokenMaker)

	// Rebuild search indexes from the database
	bootstrap.IndexBleveData(ctx, roomRepo, reservationRepo, bleveInterfaceRepo)

	// Daily reservation maintenance
	scheduler := reservations_services.NewMaintenanceScheduler(reservationRepo)
	scheduler.Start()
	defer scheduler.Stop()

	// Ensure there is an admin account to manage the system with
	if err := config.SeedInitialAdmin(db); err != nil {
		config.Logger.Error("Initial admin seeding failed", zap.Error(err))
	}

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
