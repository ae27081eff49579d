package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records security-relevant events: logins, lockouts, room and
// reservation mutations. Details carries the event-specific fields.
type AuditLog struct {
	ID      uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	UserID  *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	Event   string         `gorm:"not null;index" json:"event"`
	Details datatypes.JSON `gorm:"type:json" json:"details"`
	IP      string         `json:"ip"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
