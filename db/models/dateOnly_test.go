package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyDropsTimeOfDay(t *testing.T) {
	d := NewDateOnly(time.Date(2025, time.June, 10, 17, 45, 3, 0, time.UTC))
	assert.Equal(t, "2025-06-10", d.String())

	value, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", value)
}

func TestDateOnlyScan(t *testing.T) {
	var d DateOnly
	require.NoError(t, d.Scan("2025-06-10"))
	assert.Equal(t, "2025-06-10", d.String())

	require.NoError(t, d.Scan(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-07-01", d.String())

	assert.Error(t, d.Scan(42))
}
