package token

import (
	"strings"
	"testing"
	"time"

	"dorm-reservation-backend/db/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "12345678901234567890123456789012"

func TestNewPasetoMakerKeySize(t *testing.T) {
	_, err := NewPasetoMaker("too-short")
	assert.Error(t, err)

	_, err = NewPasetoMaker(testSymmetricKey)
	assert.NoError(t, err)
}

func TestCreateAndVerifyToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	userID := uuid.New()
	created, err := maker.CreateToken(userID, "guest@example.com", models.CustomerRole, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, created)

	payload, err := maker.VerifyToken(created)
	require.NoError(t, err)
	assert.Equal(t, userID, payload.UserID)
	assert.Equal(t, "guest@example.com", payload.Email)
	assert.Equal(t, models.CustomerRole, payload.Role)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Minute), payload.ExpiredAt, 5*time.Second)
}

func TestVerifyExpiredToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	created, err := maker.CreateToken(uuid.New(), "guest@example.com", models.CustomerRole, time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = maker.VerifyToken(created)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	created, err := maker.CreateToken(uuid.New(), "guest@example.com", models.CustomerRole, time.Minute)
	require.NoError(t, err)

	tampered := strings.Replace(created, created[len(created)-5:], "aaaaa", 1)
	_, err = maker.VerifyToken(tampered)
	assert.Error(t, err)
}
