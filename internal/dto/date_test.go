package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2025-03-04T10:00:00+09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("04/03/2025")
	assert.Error(t, err)
}

func TestParseEndOfDay(t *testing.T) {
	got, err := ParseEndOfDay("2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 23, 59, 59, 999999999, time.UTC), got)

	got, err = ParseEndOfDay("2025-03-04T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC), got)
}
