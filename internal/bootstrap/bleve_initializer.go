package bootstrap

import (
	"context"
	"log"

	bleveRepositories "dorm-reservation-backend/bleve/repositories"
	"dorm-reservation-backend/config"
	reservations_repositories "dorm-reservation-backend/reservations/repositories"
	rooms_repositories "dorm-reservation-backend/rooms/repositories"

	"go.uber.org/zap"
)

// IndexBleveData rebuilds the search indexes from the database at startup.
func IndexBleveData(
	ctx context.Context,
	roomRepo rooms_repositories.RoomRepository,
	reservationRepo reservations_repositories.ReservationRepository,
	bleveRepo bleveRepositories.BleveRepositoryInterface,
) {
	// Drop everything first; the database is the source of truth
	err := bleveRepo.DeleteAllIndices(ctx)
	if err != nil {
		log.Fatalf("Error deleting all indices: %v", err)
	}

	if rooms, err := roomRepo.GetAllRooms(); err != nil {
		config.Logger.Error("Error fetching rooms for Bleve indexing", zap.Error(err))
	} else if err := bleveRepo.IndexExistingRooms(rooms); err != nil {
		config.Logger.Error("Failed to index rooms into Bleve", zap.Error(err))
	}

	if reservations, _, err := reservationRepo.GetFilteredReservationsWithRooms(map[string]string{}, false, 0, 0); err != nil {
		config.Logger.Error("Error fetching reservations for Bleve indexing", zap.Error(err))
	} else if err := bleveRepo.IndexExistingReservations(reservations); err != nil {
		config.Logger.Error("Failed to index reservations into Bleve", zap.Error(err))
	}
}
