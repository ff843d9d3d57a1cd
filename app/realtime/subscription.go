package realtime

import (
	"context"
	"log"
	"sync"

	"github.com/paoluke/tienda/app/models"
)

// Subscription pumps delivered rows into a callback between Start and Stop.
type Subscription struct {
	feed     Feed
	onChange func(models.StoreConfig)

	mu      sync.Mutex
	cancel  func()
	done    chan struct{}
	stopped bool
}

func NewSubscription(feed Feed, onChange func(models.StoreConfig)) *Subscription {
	return &Subscription{feed: feed, onChange: onChange}
}

func (s *Subscription) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.done != nil {
		return nil
	}

	updates, cancel, err := s.feed.Subscribe(ctx)
	if err != nil {
		return err
	}

	s.cancel = cancel
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		for cfg := range updates {
			s.onChange(cfg)
		}
	}(s.done)

	log.Printf("Subscription.Start: listening for store config changes")
	return nil
}

// Stop cancels the feed subscription and waits for the delivery goroutine.
// Calling it more than once, or before Start, is safe.
func (s *Subscription) Stop() {
	s.mu.Lock()
	if s.stopped || s.done == nil {
		s.stopped = true
		s.mu.Unlock()
		return
	}
	s.stopped = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
}
