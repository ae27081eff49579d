package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	CustomerRole Role = "customer"
	ManagerRole  Role = "manager"
	AdminRole    Role = "admin"
)

// User represents system users with role-based access
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Email    string    `gorm:"unique;not null" json:"email"`
	Password string    `json:"-"` // Never include in JSON responses

	Role Role `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`

	// Status
	Disabled    bool       `gorm:"default:false" json:"disabled"`
	LastLoginAt *time.Time `json:"last_login_at"`
	LastLoginIP *string    `json:"last_login_ip"`

	// Lockout bookkeeping
	FailedAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil    *time.Time `json:"-"`

	// Password policy bookkeeping
	PasswordChangedAt *time.Time `json:"-"`

	// Audit fields
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsLocked reports whether the account is currently locked out
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
