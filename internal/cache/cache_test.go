package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("products:search:q=kopi", []string{"Kopi Susu"})

	v, ok := c.Get("products:search:q=kopi")
	require.True(t, ok)
	assert.Equal(t, []string{"Kopi Susu"}, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiration(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)

	c.removeExpired()
	assert.Zero(t, len(c.items))
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("products:search:a", 1)
	c.Set("products:search:b", 2)
	c.Set("stats", 3)

	c.DeleteByPrefix("products:")

	assert.Equal(t, 1, len(c.items))
	_, ok := c.Get("stats")
	assert.True(t, ok)
}

func TestCloseTwice(t *testing.T) {
	c := New(0)
	c.Close()
	c.Close()
}
