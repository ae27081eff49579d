package repositories

import (
	"strings"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

// bleveRoomDoc is the minimal document shape indexed for room search.
type bleveRoomDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	IsActive    bool   `json:"is_active"`
}

func newBleveRoomDoc(room models.Room) bleveRoomDoc {
	return bleveRoomDoc{
		ID:          room.ID.String(),
		Name:        room.Name,
		Description: room.Description,
		Capacity:    room.Capacity,
		IsActive:    room.IsActive,
	}
}

func (r *BleveRepository) IndexSingleRoom(room models.Room) error {
	err := r.indexer.IndexDocument("rooms", room.ID.String(), newBleveRoomDoc(room))
	if err != nil {
		config.Logger.Error("Failed to index room into Bleve",
			zap.Error(err),
			zap.String("room_id", room.ID.String()))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingRooms(rooms []models.Room) error {
	docsToBleveIndex := make(map[string]interface{})
	for _, room := range rooms {
		docsToBleveIndex[room.ID.String()] = newBleveRoomDoc(room)
	}

	if len(docsToBleveIndex) == 0 {
		config.Logger.Info("No rooms to index into Bleve")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments("rooms", docsToBleveIndex); err != nil {
		config.Logger.Error("Failed to bulk index rooms into Bleve", zap.Error(err))
		return err
	}
	return nil
}

// UpdateRoom replaces the indexed document for a room
func (r *BleveRepository) UpdateRoom(room models.Room) error {
	roomID := room.ID.String()

	if err := r.indexer.DeleteDocument("rooms", roomID); err != nil {
		config.Logger.Error("Failed to delete room document for update",
			zap.Error(err),
			zap.String("room_id", roomID))
		return err
	}
	return r.IndexSingleRoom(room)
}

// DeleteRoom removes a room from the index
func (r *BleveRepository) DeleteRoom(roomID string) error {
	if err := r.indexer.DeleteDocument("rooms", roomID); err != nil {
		config.Logger.Error("Failed to delete room from Bleve",
			zap.Error(err),
			zap.String("room_id", roomID))
		return err
	}
	return nil
}

// SearchRooms combines exact, prefix and fuzzy matching over name and
// description with optional capacity and active filters.
func (r *BleveRepository) SearchRooms(queryString string, capacity string, active *bool) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()
	queryString = strings.TrimSpace(queryString)
	queryStringLower := strings.ToLower(queryString)

	if queryString != "" {
		exactMatch := bleve.NewBooleanQuery()

		nameExact := bleve.NewTermQuery(queryString)
		nameExact.SetField("name")
		nameExact.SetBoost(10.0)
		exactMatch.AddShould(nameExact)

		nameExactLower := bleve.NewTermQuery(queryStringLower)
		nameExactLower.SetField("name")
		nameExactLower.SetBoost(9.0)
		exactMatch.AddShould(nameExactLower)

		nameMatch := bleve.NewMatchQuery(queryString)
		nameMatch.SetField("name")
		nameMatch.SetBoost(7.0)
		exactMatch.AddShould(nameMatch)

		descriptionMatch := bleve.NewMatchQuery(queryString)
		descriptionMatch.SetField("description")
		descriptionMatch.SetBoost(3.0)
		exactMatch.AddShould(descriptionMatch)

		prefixMatch := bleve.NewBooleanQuery()

		namePrefix := bleve.NewPrefixQuery(queryStringLower)
		namePrefix.SetField("name")
		namePrefix.SetBoost(6.0)
		prefixMatch.AddShould(namePrefix)

		fuzzyQuery := bleve.NewFuzzyQuery(queryStringLower)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(4.0)
		fuzzyQuery.SetFuzziness(1)
		prefixMatch.AddShould(fuzzyQuery)

		booleanQuery.AddShould(exactMatch)
		booleanQuery.AddShould(prefixMatch)
	}

	finalQuery := bleve.NewBooleanQuery()
	if queryString != "" {
		finalQuery.AddMust(booleanQuery)
	}

	if capacity != "" {
		capacityQuery := bleve.NewQueryStringQuery("capacity:" + capacity)
		finalQuery.AddMust(capacityQuery)
	}

	if active != nil {
		activeQuery := bleve.NewBoolFieldQuery(*active)
		activeQuery.SetField("is_active")
		finalQuery.AddMust(activeQuery)
	}

	return r.indexer.SearchIndex("rooms", finalQuery, 20)
}

func (r *BleveRepository) GetRoomDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument("rooms", id)
}
