package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climate-data-explorer/internal/climate"
)

var series = []climate.AnnualPoint{{Year: 2000, Temperature: 14}}

func TestMemoryCacheGetPut(t *testing.T) {
	c := NewMemoryCache(0, 0)

	_, ok := c.Get("1:Japan")
	assert.False(t, ok)

	c.Put("1:Japan", series)
	got, ok := c.Get("1:Japan")
	require.True(t, ok)
	assert.Equal(t, series, got)
}

func TestMemoryCacheRetentionByCount(t *testing.T) {
	c := NewMemoryCache(2, 0)

	c.Put("a", series)
	c.Put("b", series)
	c.Put("a", series)
	c.Put("c", series)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestMemoryCacheRetentionByAge(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(0, time.Hour)
	c.now = func() time.Time { return now }

	c.Put("a", series)
	now = now.Add(30 * time.Minute)
	_, ok := c.Get("a")
	assert.True(t, ok)

	now = now.Add(time.Hour)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCachePurge(t *testing.T) {
	c := NewMemoryCache(0, 0)
	c.Put("a", series)
	c.Put("b", series)

	c.Purge()

	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheImplementsCache(t *testing.T) {
	var _ climate.Cache = NewMemoryCache(1, time.Minute)
}
