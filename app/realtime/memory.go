package realtime

import (
	"context"
	"sync"

	"github.com/paoluke/tienda/app/models"
)

// MemoryFeed fans rows out to subscribers of the same process.
type MemoryFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan models.StoreConfig
}

var _ Feed = (*MemoryFeed)(nil)

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[int]chan models.StoreConfig)}
}

func (f *MemoryFeed) Publish(ctx context.Context, cfg models.StoreConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		offer(ch, cfg)
	}
	return nil
}

func (f *MemoryFeed) Subscribe(ctx context.Context) (<-chan models.StoreConfig, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f.mu.Lock()
	f.nextID++
	id := f.nextID
	ch := make(chan models.StoreConfig, 1)
	f.subs[id] = ch
	f.mu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	go func() {
		<-subCtx.Done()
		f.mu.Lock()
		delete(f.subs, id)
		close(ch)
		f.mu.Unlock()
	}()

	return ch, cancel, nil
}

func (f *MemoryFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
