package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/paoluke/tienda/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}

func TestRedisFeedPublishSubscribe(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	feed := NewRedisFeedFromClient(client)

	updates, cancel, err := feed.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, feed.Publish(ctx, models.StoreConfig{ID: 1, StoreName: "PaoLUKE", BannerActive: true}))

	select {
	case cfg := <-updates:
		assert.Equal(t, "PaoLUKE", cfg.StoreName)
		assert.True(t, cfg.BannerActive)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for config")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-updates
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRedisFeedSkipsMalformedPayload(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	feed := NewRedisFeedFromClient(client)

	updates, cancel, err := feed.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	mr.Publish(Channel, "{broken")
	require.NoError(t, feed.Publish(ctx, models.StoreConfig{StoreName: "ok"}))

	select {
	case cfg := <-updates:
		assert.Equal(t, "ok", cfg.StoreName)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for config")
	}
}
