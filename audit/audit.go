package audit

import (
	"encoding/json"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Record persists a security/audit event. Failures are logged, never
// surfaced: an audit write must not fail the operation it records.
func Record(db *gorm.DB, userID *uuid.UUID, event string, details map[string]interface{}, ip string) {
	var payload []byte
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			payload = b
		}
	}

	entry := models.AuditLog{
		UserID:  userID,
		Event:   event,
		Details: datatypes.JSON(payload),
		IP:      ip,
	}
	if err := db.Create(&entry).Error; err != nil {
		config.Logger.Error("Failed to write audit log",
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
