package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New(time.Minute, 0, 10)

	c.Set("key", "value")
	got, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", got)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	c := New(time.Minute, 0, 10)

	c.SetWithExpiration("short", "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("short")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	c := New(time.Minute, 0, 10)

	c.Set("key", "value")
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestMaxItemsEviction(t *testing.T) {
	c := New(time.Minute, 0, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	count := 0
	for _, key := range []string{"a", "b", "c"} {
		if _, found := c.Get(key); found {
			count++
		}
	}
	assert.Equal(t, 2, count, "one entry is evicted at capacity")

	_, found := c.Get("c")
	assert.True(t, found, "the newest entry survives")
}

func TestOverwriteAtCapacityDoesNotEvict(t *testing.T) {
	c := New(time.Minute, 0, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	got, found := c.Get("a")
	assert.True(t, found)
	assert.Equal(t, 10, got)

	_, found = c.Get("b")
	assert.True(t, found)
}
