package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/paoluke/tienda/app/helpers"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/realtime"
	"github.com/paoluke/tienda/app/repositories"
)

// ConfigService owns the live store configuration snapshot. Every change,
// local or delivered by the realtime feed, replaces the whole snapshot.
type ConfigService struct {
	repo      repositories.ConfigRepositoryImpl
	feed      realtime.Feed
	validator *validator.Validate

	mu       sync.RWMutex
	snapshot *models.StoreConfig
	watchers map[int]chan models.StoreConfig
	nextID   int
}

var _ ConfigSource = (*ConfigService)(nil)

func NewConfigService(repo repositories.ConfigRepositoryImpl, feed realtime.Feed, validator *validator.Validate) *ConfigService {
	return &ConfigService{
		repo:      repo,
		feed:      feed,
		validator: validator,
		watchers:  make(map[int]chan models.StoreConfig),
	}
}

// Current returns the snapshot, loading it on first use.
func (s *ConfigService) Current(ctx context.Context) (models.StoreConfig, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap != nil {
		return *snap, nil
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return models.StoreConfig{}, fmt.Errorf("failed to load store config: %w", err)
	}
	if cfg == nil {
		return models.StoreConfig{}, models.NewNotFoundError("config", 0)
	}

	s.mu.Lock()
	if s.snapshot == nil {
		s.snapshot = cfg
	}
	current := *s.snapshot
	s.mu.Unlock()
	return current, nil
}

// Replace swaps in a delivered row and notifies watchers.
func (s *ConfigService) Replace(cfg models.StoreConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cfg
	s.snapshot = &c
	for _, ch := range s.watchers {
		select {
		case ch <- cfg:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- cfg:
			default:
			}
		}
	}
}

func (s *ConfigService) validate(cfg *models.StoreConfig) error {
	cfg.StoreName = strings.TrimSpace(cfg.StoreName)
	cfg.WhatsApp = strings.TrimSpace(cfg.WhatsApp)
	cfg.Email = strings.TrimSpace(cfg.Email)
	cfg.Instagram = strings.TrimPrefix(strings.TrimSpace(cfg.Instagram), "@")

	if err := s.validator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return FieldErrors(helpers.FormatValidationErrors(verrs))
		}
		return err
	}
	return nil
}

// Save validates and persists cfg, then publishes it. A failed publish is
// logged; the row is already saved and other processes catch up on their
// next load.
func (s *ConfigService) Save(ctx context.Context, cfg models.StoreConfig) (*models.StoreConfig, error) {
	if err := s.validate(&cfg); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to save store config: %w", err)
	}

	s.Replace(cfg)

	if s.feed != nil {
		if err := s.feed.Publish(ctx, cfg); err != nil {
			log.Printf("ConfigService.Save: WARN failed to publish config change: %v", err)
		}
	}

	log.Printf("ConfigService.Save: store config %d saved", cfg.ID)
	return &cfg, nil
}

// Watch streams snapshot replacements until ctx ends.
func (s *ConfigService) Watch(ctx context.Context) <-chan models.StoreConfig {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	ch := make(chan models.StoreConfig, 1)
	s.watchers[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *ConfigService) Watchers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watchers)
}
