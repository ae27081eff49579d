package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRoomName(t *testing.T) {
	assert.Equal(t, "Room 101", ValidateRoomName("Room 101"))
	assert.Equal(t, "Room 101", ValidateRoomName("  Room   101  "))
	assert.Equal(t, "West Wing B-2", ValidateRoomName("West Wing B-2"))

	assert.Empty(t, ValidateRoomName(""))
	assert.Empty(t, ValidateRoomName("   "))
	assert.Empty(t, ValidateRoomName(strings.Repeat("a", 65)))
	assert.Empty(t, ValidateRoomName("Room\x00101"))
	assert.Empty(t, ValidateRoomName("Room\x07"))
}

func TestValidateRoomNameBoundaryLength(t *testing.T) {
	name := strings.Repeat("a", 64)
	assert.Equal(t, name, ValidateRoomName(name))
}

func TestValidateRoomDescription(t *testing.T) {
	got, ok := ValidateRoomDescription("A sunny double room")
	assert.True(t, ok)
	assert.Equal(t, "A sunny double room", got)

	// Empty is allowed
	got, ok = ValidateRoomDescription("")
	assert.True(t, ok)
	assert.Empty(t, got)

	_, ok = ValidateRoomDescription(strings.Repeat("a", 256))
	assert.False(t, ok)

	_, ok = ValidateRoomDescription("bad\x00description")
	assert.False(t, ok)
}

func TestValidateRoomCapacity(t *testing.T) {
	assert.True(t, ValidateRoomCapacity(1))
	assert.True(t, ValidateRoomCapacity(10))
	assert.False(t, ValidateRoomCapacity(0))
	assert.False(t, ValidateRoomCapacity(-1))
	assert.False(t, ValidateRoomCapacity(11))
}
