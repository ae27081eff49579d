package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateAcceptedFormats(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "2025-06-10", "2025-06-10"},
		{"us slash", "06/10/2025", "2025-06-10"},
		{"day first slash", "25/12/2025", "2025-12-25"},
		{"year first slash", "2025/06/10", "2025-06-10"},
		{"dotted", "2025.06.10", "2025-06-10"},
		{"us dash", "06-10-2025", "2025-06-10"},
		{"day first dash", "25-12-2025", "2025-12-25"},
		{"long form", "January 2, 2026", "2026-01-02"},
		{"short month", "Jan 2, 2026", "2026-01-02"},
		{"rfc3339 drops time", "2025-06-10T15:04:05Z", "2025-06-10"},
		{"surrounding whitespace", "  2025-06-10  ", "2025-06-10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDate(tc.input)
			require.True(t, ok, "expected %q to parse", tc.input)
			assert.Equal(t, tc.want, FormatDate(got))
		})
	}
}

// An ambiguous numeric date reads month-first: 01/02/2025 is January 2nd.
func TestNormalizeDateAmbiguityIsMonthFirst(t *testing.T) {
	got, ok := NormalizeDate("01/02/2025")
	require.True(t, ok)
	assert.Equal(t, "2025-01-02", FormatDate(got))
}

func TestNormalizeDateRejectsInvalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"not a date",
		"2025-13-40",
		"2025-02-30",
		"31/31/2025",
		"10",
		"2025-06",
	}
	for _, input := range invalid {
		_, ok := NormalizeDate(input)
		assert.False(t, ok, "expected %q to be rejected", input)
	}
}

func TestNormalizeDateIsMidnightUTC(t *testing.T) {
	got, ok := NormalizeDate("2025-06-10T15:04:05Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}
