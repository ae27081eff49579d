package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name                   string
		fromA, toA, fromB, toB time.Time
		want                   bool
	}{
		{"identical", day(10), day(15), day(10), day(15), true},
		{"contained", day(11), day(13), day(10), day(15), true},
		{"containing", day(10), day(15), day(11), day(13), true},
		{"partial left", day(8), day(12), day(10), day(15), true},
		{"partial right", day(12), day(18), day(10), day(15), true},
		{"one shared night", day(14), day(15), day(10), day(15), true},
		{"checkout equals checkin", day(15), day(20), day(10), day(15), false},
		{"checkin equals checkout", day(5), day(10), day(10), day(15), false},
		{"disjoint before", day(1), day(5), day(10), day(15), false},
		{"disjoint after", day(20), day(25), day(10), day(15), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, overlapsHalfOpen(tc.fromA, tc.toA, tc.fromB, tc.toB))
			// Overlap is symmetric
			assert.Equal(t, tc.want, overlapsHalfOpen(tc.fromB, tc.toB, tc.fromA, tc.toA))
		})
	}
}
