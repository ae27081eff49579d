package token

import (
	"time"

	"dorm-reservation-backend/db/models"

	"github.com/google/uuid"
)

// Maker defines a contract for anything that can create and verify tokens.
// Allows swapping out token implementations without changing the rest of
// the application logic.
type Maker interface {
	CreateToken(userID uuid.UUID, email string, role models.Role, duration time.Duration) (string, error)

	VerifyToken(token string) (*Payload, error)
}
