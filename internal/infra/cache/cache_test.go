package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/config"
)

func TestCache_NilIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest map[string]string
	found, err := c.GetJSON(ctx, "roles:1", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.SetJSON(ctx, "roles:1", "admin"))
	assert.NoError(t, c.Delete(ctx, "roles:1"))
}

func TestCache_WithoutClient(t *testing.T) {
	c := New(nil, "marketplace", 0)

	found, err := c.GetJSON(context.Background(), "categories", &[]string{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "marketplace:categories", c.key("categories"))
}

func TestNewRedis_EmptyAddr(t *testing.T) {
	_, err := NewRedis(context.Background(), config.RedisConfig{})
	assert.Error(t, err)
}
