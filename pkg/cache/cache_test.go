package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientBypasses(t *testing.T) {
	ctx := context.Background()
	c := New(nil, 0)

	assert.False(t, c.Available())
	assert.Equal(t, 10*time.Minute, c.defaultTTL)
	assert.Error(t, c.Ping(ctx))

	require.NoError(t, c.SetJSON(ctx, "jobs:detail:1", map[string]string{"title": "Go"}, 0))

	var out map[string]string
	hit, err := c.GetJSON(ctx, "jobs:detail:1", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)

	assert.NoError(t, c.Delete(ctx, "jobs:detail:1"))
	assert.NoError(t, c.DeleteByPrefix(ctx, "jobs:"))
}

func TestNilCacheIsUnavailable(t *testing.T) {
	var c *Cache
	assert.False(t, c.Available())
}
