package repositories

import (
	"strings"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

// bleveReservationDoc is the document shape indexed for reservation search.
// Room name and owner email are denormalized in so operators can search by
// either without touching the database.
type bleveReservationDoc struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	RoomName  string `json:"room_name"`
	UserEmail string `json:"user_email"`
	Status    string `json:"status"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
}

func newBleveReservationDoc(reservation models.Reservation) bleveReservationDoc {
	doc := bleveReservationDoc{
		ID:       reservation.ID.String(),
		RoomID:   reservation.RoomID.String(),
		Status:   string(reservation.Status),
		DateFrom: reservation.DateFrom.String(),
		DateTo:   reservation.DateTo.String(),
	}
	if reservation.Room != nil {
		doc.RoomName = reservation.Room.Name
	}
	if reservation.User != nil {
		doc.UserEmail = reservation.User.Email
	}
	return doc
}

func (r *BleveRepository) IndexSingleReservation(reservation models.Reservation) error {
	err := r.indexer.IndexDocument("reservations", reservation.ID.String(), newBleveReservationDoc(reservation))
	if err != nil {
		config.Logger.Error("Failed to index reservation into Bleve",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingReservations(rows []models.ReservationWithRoom) error {
	docsToBleveIndex := make(map[string]interface{})
	for _, row := range rows {
		doc := newBleveReservationDoc(row.Reservation)
		doc.RoomName = row.RoomName
		doc.UserEmail = row.UserEmail
		docsToBleveIndex[row.ID.String()] = doc
	}

	if len(docsToBleveIndex) == 0 {
		config.Logger.Info("No reservations to index into Bleve")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments("reservations", docsToBleveIndex); err != nil {
		config.Logger.Error("Failed to bulk index reservations into Bleve", zap.Error(err))
		return err
	}
	return nil
}

// UpdateReservation replaces the indexed document for a reservation
func (r *BleveRepository) UpdateReservation(reservation models.Reservation) error {
	reservationID := reservation.ID.String()

	if err := r.indexer.DeleteDocument("reservations", reservationID); err != nil {
		config.Logger.Error("Failed to delete reservation document for update",
			zap.Error(err),
			zap.String("reservation_id", reservationID))
		return err
	}
	return r.IndexSingleReservation(reservation)
}

// DeleteReservation removes a reservation from the index
func (r *BleveRepository) DeleteReservation(reservationID string) error {
	if err := r.indexer.DeleteDocument("reservations", reservationID); err != nil {
		config.Logger.Error("Failed to delete reservation from Bleve",
			zap.Error(err),
			zap.String("reservation_id", reservationID))
		return err
	}
	return nil
}

// SearchReservations matches room names and owner emails with an optional
// status filter.
func (r *BleveRepository) SearchReservations(queryString string, status string) (*bleve.SearchResult, error) {
	queryString = strings.TrimSpace(queryString)
	queryStringLower := strings.ToLower(queryString)

	textQuery := bleve.NewBooleanQuery()
	if queryString != "" {
		roomNameMatch := bleve.NewMatchQuery(queryString)
		roomNameMatch.SetField("room_name")
		roomNameMatch.SetBoost(7.0)
		textQuery.AddShould(roomNameMatch)

		roomNamePrefix := bleve.NewPrefixQuery(queryStringLower)
		roomNamePrefix.SetField("room_name")
		roomNamePrefix.SetBoost(6.0)
		textQuery.AddShould(roomNamePrefix)

		emailMatch := bleve.NewMatchQuery(queryStringLower)
		emailMatch.SetField("user_email")
		emailMatch.SetBoost(5.0)
		textQuery.AddShould(emailMatch)

		emailPrefix := bleve.NewPrefixQuery(queryStringLower)
		emailPrefix.SetField("user_email")
		emailPrefix.SetBoost(4.0)
		textQuery.AddShould(emailPrefix)

		fuzzyQuery := bleve.NewFuzzyQuery(queryStringLower)
		fuzzyQuery.SetField("room_name")
		fuzzyQuery.SetBoost(3.0)
		fuzzyQuery.SetFuzziness(1)
		textQuery.AddShould(fuzzyQuery)
	}

	finalQuery := bleve.NewBooleanQuery()
	if queryString != "" {
		finalQuery.AddMust(textQuery)
	}

	if status != "" {
		statusQuery := bleve.NewTermQuery(strings.ToLower(status))
		statusQuery.SetField("status")
		finalQuery.AddMust(statusQuery)
	}

	return r.indexer.SearchIndex("reservations", finalQuery, 20)
}

func (r *BleveRepository) GetReservationDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument("reservations", id)
}
