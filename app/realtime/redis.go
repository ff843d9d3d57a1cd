package realtime

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/paoluke/tienda/app/models"
)

type RedisFeed struct {
	client  *redis.Client
	channel string
}

var _ Feed = (*RedisFeed)(nil)

func NewRedisFeed(ctx context.Context, redisURL string) (*RedisFeed, error) {
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisFeedFromClient(client), nil
}

func NewRedisFeedFromClient(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client, channel: Channel}
}

func (f *RedisFeed) Publish(ctx context.Context, cfg models.StoreConfig) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}
	if err := f.client.Publish(ctx, f.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish store config to Redis: %w", err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan models.StoreConfig, func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	pubsub := f.client.Subscribe(subCtx, f.channel)
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", f.channel, err)
	}

	out := make(chan models.StoreConfig, 1)

	go func() {
		defer func() {
			_ = pubsub.Close()
			close(out)
		}()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				cfg, err := decode(msg.Payload)
				if err != nil {
					log.Printf("RedisFeed.Subscribe: WARN dropping message: %v", err)
					continue
				}
				offer(out, cfg)
			}
		}
	}()

	return out, cancel, nil
}

func (f *RedisFeed) Close() error {
	return f.client.Close()
}
