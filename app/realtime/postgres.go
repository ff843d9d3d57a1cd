package realtime

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/paoluke/tienda/app/models"
)

// maxNotifyPayload stays under the 8000 byte NOTIFY limit. Larger rows
// (a big logo) are announced by id and reloaded by the receiver.
const maxNotifyPayload = 7900

// PostgresFeed uses LISTEN/NOTIFY on the hosted database.
type PostgresFeed struct {
	dsn     string
	db      *sql.DB
	load    Loader
	channel string
}

var _ Feed = (*PostgresFeed)(nil)

func NewPostgresFeed(dsn string, load Loader) (*PostgresFeed, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open notify connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	return &PostgresFeed{dsn: dsn, db: db, load: load, channel: Channel}, nil
}

func (f *PostgresFeed) Publish(ctx context.Context, cfg models.StoreConfig) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}
	payload := string(data)
	if len(payload) > maxNotifyPayload {
		payload = strconv.FormatInt(cfg.ID, 10)
	}
	if _, err := f.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", f.channel, payload); err != nil {
		return fmt.Errorf("failed to notify %s: %w", f.channel, err)
	}
	return nil
}

func (f *PostgresFeed) resolve(ctx context.Context, payload string) (models.StoreConfig, bool) {
	if _, err := strconv.ParseInt(payload, 10, 64); err != nil && payload != "" {
		cfg, err := decode(payload)
		if err != nil {
			log.Printf("PostgresFeed: WARN dropping notification: %v", err)
			return models.StoreConfig{}, false
		}
		return cfg, true
	}
	return f.reload(ctx)
}

func (f *PostgresFeed) reload(ctx context.Context) (models.StoreConfig, bool) {
	if f.load == nil {
		return models.StoreConfig{}, false
	}
	cfg, err := f.load(ctx)
	if err != nil || cfg == nil {
		log.Printf("PostgresFeed: WARN failed to reload store config: %v", err)
		return models.StoreConfig{}, false
	}
	return *cfg, true
}

func (f *PostgresFeed) Subscribe(ctx context.Context) (<-chan models.StoreConfig, func(), error) {
	listener := pq.NewListener(f.dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("PostgresFeed: listener event %d: %v", ev, err)
		}
	})
	if err := listener.Listen(f.channel); err != nil {
		_ = listener.Close()
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", f.channel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	out := make(chan models.StoreConfig, 1)

	go func() {
		defer func() {
			_ = listener.Close()
			close(out)
		}()

		for {
			select {
			case <-subCtx.Done():
				return
			case n := <-listener.Notify:
				// nil after a reconnect: notifications may have been missed.
				payload := ""
				if n != nil {
					payload = n.Extra
				}
				if cfg, ok := f.resolve(subCtx, payload); ok {
					offer(out, cfg)
				}
			case <-time.After(90 * time.Second):
				go func() {
					if err := listener.Ping(); err != nil {
						log.Printf("PostgresFeed: listener ping failed: %v", err)
					}
				}()
			}
		}
	}()

	return out, cancel, nil
}

func (f *PostgresFeed) Close() error {
	return f.db.Close()
}
