package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("CorrectHorse9!Battery"))
	assert.Empty(t, ValidatePassword("Aa1$"+strings.Repeat("x", 8)))

	assert.NotEmpty(t, ValidatePassword("Short1a!"), "too short")
	assert.NotEmpty(t, ValidatePassword(strings.Repeat("Aa1!", 40)), "too long")
	assert.NotEmpty(t, ValidatePassword("alllowercase123!"), "no uppercase")
	assert.NotEmpty(t, ValidatePassword("ALLUPPERCASE123!"), "no lowercase")
	assert.NotEmpty(t, ValidatePassword("NoDigitsHereSir!"), "no digit")
	assert.NotEmpty(t, ValidatePassword("CorrectHorse9Battery"), "no special character")
}

func TestValidateEmailFormat(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"user+tag@example.org",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmailFormat(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user @example.com",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmailFormat(email), email)
	}
}

func TestPasswordHashingRoundTrip(t *testing.T) {
	hash, err := HashPassword("CorrectHorse9Battery")
	require.NoError(t, err)
	assert.NotEqual(t, "CorrectHorse9Battery", hash)

	assert.True(t, CheckPasswordHash("CorrectHorse9Battery", hash))
	assert.False(t, CheckPasswordHash("WrongPassword1x", hash))
}
