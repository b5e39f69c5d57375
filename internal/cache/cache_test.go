package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_EmptyAddrDisablesCache(t *testing.T) {
	assert.Nil(t, New("", "", 0))
}

func TestNilClient_BehavesAsEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, "user:1")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(ctx, "user:1", []byte("x"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "user:1", "podcast:1"))

	var out map[string]string
	assert.False(t, c.GetJSON(ctx, "user:1", &out))
	c.SetJSON(ctx, "user:1", map[string]string{"a": "b"}, time.Minute)
	assert.NoError(t, c.Close())
}

func TestUnreachableRedis_FailsSafe(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := c.Get(ctx, "podcast:1")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "podcast:1", []byte("{}"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "podcast:1"))
}
