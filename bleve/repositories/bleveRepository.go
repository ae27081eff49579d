package repositories

import (
	"context"

	bleveindex "dorm-reservation-backend/bleve/services"
	"dorm-reservation-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

type BleveRepositoryInterface interface {
	// General
	DeleteAllIndices(ctx context.Context) error

	// ==== Room Indexing ====
	IndexSingleRoom(room models.Room) error
	IndexExistingRooms(rooms []models.Room) error
	UpdateRoom(room models.Room) error
	DeleteRoom(roomID string) error
	SearchRooms(queryString string, capacity string, active *bool) (*bleve.SearchResult, error)
	GetRoomDocument(id string) (interface{}, error)

	// ==== Reservation Indexing ====
	IndexSingleReservation(reservation models.Reservation) error
	IndexExistingReservations(rows []models.ReservationWithRoom) error
	UpdateReservation(reservation models.Reservation) error
	DeleteReservation(reservationID string) error
	SearchReservations(queryString string, status string) (*bleve.SearchResult, error)
	GetReservationDocument(id string) (interface{}, error)
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}
