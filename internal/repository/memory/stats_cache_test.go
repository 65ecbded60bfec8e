package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCache_RoundTripAndInvalidate(t *testing.T) {
	c := NewStatsCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rd-groups", map[string]int{"a": 2}))

	var got map[string]int
	found, err := c.Get(ctx, "rd-groups", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, got["a"])

	require.NoError(t, c.Invalidate(ctx, "rd-groups"))
	found, err = c.Get(ctx, "rd-groups", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStatsCache_Expires(t *testing.T) {
	c := NewStatsCache(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "keywords", []string{"dose"}))
	time.Sleep(40 * time.Millisecond)

	var got []string
	found, err := c.Get(ctx, "keywords", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
