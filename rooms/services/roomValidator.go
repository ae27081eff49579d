package services

import (
	"strings"
	"unicode"
)

const (
	maxRoomNameLength        = 64
	maxRoomDescriptionLength = 255
	minRoomCapacity          = 1
	maxRoomCapacity          = 10
)

// ValidateRoomName validates shape rather than blacklisting known-bad
// input: trimmed, non-empty, bounded length, printable characters only.
// Returns the cleaned name or "" when invalid.
func ValidateRoomName(name string) string {
	name = collapseWhitespace(strings.TrimSpace(name))
	if name == "" || len(name) > maxRoomNameLength {
		return ""
	}
	if !isPrintableText(name) {
		return ""
	}
	return name
}

// ValidateRoomDescription returns the cleaned description and whether it
// was acceptable. An empty description is valid.
func ValidateRoomDescription(description string) (string, bool) {
	description = collapseWhitespace(strings.TrimSpace(description))
	if len(description) > maxRoomDescriptionLength {
		return "", false
	}
	if description != "" && !isPrintableText(description) {
		return "", false
	}
	return description, true
}

// ValidateRoomCapacity reports whether the capacity is within [1, 10].
func ValidateRoomCapacity(capacity int) bool {
	return capacity >= minRoomCapacity && capacity <= maxRoomCapacity
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isPrintableText(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
