package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paoluke/tienda/app/models"
)

// Channel is the pub/sub channel carrying store configuration rows.
const Channel = "config_changes"

// Feed delivers full StoreConfig rows to every running process. Each
// delivered row replaces the receiver's snapshot.
type Feed interface {
	Publish(ctx context.Context, cfg models.StoreConfig) error
	// Subscribe returns a channel of delivered rows. The channel is closed
	// after cancel is called or ctx ends.
	Subscribe(ctx context.Context) (<-chan models.StoreConfig, func(), error)
}

// Loader reads the current row from the database. Feeds use it when a
// notification does not carry the row itself.
type Loader func(ctx context.Context) (*models.StoreConfig, error)

func encode(cfg models.StoreConfig) ([]byte, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal store config: %w", err)
	}
	return data, nil
}

func decode(payload string) (models.StoreConfig, error) {
	var cfg models.StoreConfig
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return models.StoreConfig{}, fmt.Errorf("failed to unmarshal store config: %w", err)
	}
	return cfg, nil
}

// offer hands cfg to a buffered channel of size one, replacing a row the
// consumer has not picked up yet.
func offer(ch chan models.StoreConfig, cfg models.StoreConfig) {
	select {
	case ch <- cfg:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- cfg:
	default:
	}
}

type Options struct {
	Driver      string
	RedisURL    string
	PostgresDSN string
	Loader      Loader
}

func New(ctx context.Context, opts Options) (Feed, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemoryFeed(), nil
	case "redis":
		return NewRedisFeed(ctx, opts.RedisURL)
	case "postgres":
		return NewPostgresFeed(opts.PostgresDSN, opts.Loader)
	default:
		return nil, fmt.Errorf("unsupported REALTIME_DRIVER %q", opts.Driver)
	}
}
