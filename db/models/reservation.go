package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	PendingReservationStatus   ReservationStatus = "pending"
	ApprovedReservationStatus  ReservationStatus = "approved"
	RejectedReservationStatus  ReservationStatus = "rejected"
	CancelledReservationStatus ReservationStatus = "cancelled"
	CompletedReservationStatus ReservationStatus = "completed"
)

// AssignableReservationStatuses are the statuses a manager/admin may set
// directly. Completed is only ever set by the scheduler once a stay is over.
var AssignableReservationStatuses = []ReservationStatus{
	PendingReservationStatus,
	ApprovedReservationStatus,
	RejectedReservationStatus,
	CancelledReservationStatus,
}

// Reservation is a customer's claim on a room for a half-open date
// interval [DateFrom, DateTo): the checkout day itself is free for the
// next check-in.
type Reservation struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	RoomID uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	Room   *Room     `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`

	DateFrom DateOnly          `gorm:"type:date;not null" json:"date_from"`
	DateTo   DateOnly          `gorm:"type:date;not null" json:"date_to"`
	Status   ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ReservationWithRoom is the read-side join used by listing endpoints: the
// reservation denormalized with room details and, for admin views, the
// owning customer's email.
type ReservationWithRoom struct {
	Reservation
	RoomName        string `json:"room_name"`
	RoomDescription string `json:"room_description"`
	RoomCapacity    int    `json:"room_capacity"`
	UserEmail       string `json:"user_email,omitempty"`
}
