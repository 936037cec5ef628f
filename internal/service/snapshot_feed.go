package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Loader fetches the complete current collection from the backing store.
type Loader[T any] func(ctx context.Context) ([]T, error)

// ChangeNotifier is the write-side half of a feed: writers call it after
// every mutation of the underlying collection.
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context) error
}

// SnapshotFeed turns collection writes into a live subscription of full
// snapshots. Writers publish a change notification to a Redis channel; the
// feed reloads the whole collection on every notification and fans the
// snapshot out to subscribers, superseding any snapshot they have not
// consumed yet (latest wins, intermediate states may be dropped).
//
// A failed reload leaves subscribers at the last-known-good snapshot; the
// feed recovers on the next successful notification.
type SnapshotFeed[T any] struct {
	redisClient *redis.Client
	channel     string
	load        Loader[T]
	log         *logrus.Logger

	mu      sync.Mutex
	subs    map[int]chan []T
	nextSub int
	last    []T
	hasLast bool

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewSnapshotFeed[T any](redisClient *redis.Client, channel string, load Loader[T], log *logrus.Logger) *SnapshotFeed[T] {
	return &SnapshotFeed[T]{
		redisClient: redisClient,
		channel:     channel,
		load:        load,
		stopChan:    make(chan struct{}),
		subs:        make(map[int]chan []T),
		log:         log,
	}
}

// Start performs the initial load and begins listening for change
// notifications. It must be called before Subscribe.
func (f *SnapshotFeed[T]) Start(ctx context.Context) error {
	snapshot, err := f.load(ctx)
	if err != nil {
		return fmt.Errorf("initial %s snapshot: %w", f.channel, err)
	}
	f.broadcast(snapshot)

	pubsub := f.redisClient.Subscribe(ctx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("subscribe %s: %w", f.channel, err)
	}

	f.wg.Add(1)
	go f.listen(pubsub)

	f.log.Infof("Snapshot feed listening on channel %s", f.channel)
	return nil
}

// Stop shuts the feed down and closes all subscriber channels.
// Safe to call multiple times.
func (f *SnapshotFeed[T]) Stop() {
	if f.stopped.CompareAndSwap(false, true) {
		close(f.stopChan)
		f.wg.Wait()

		f.mu.Lock()
		for id, ch := range f.subs {
			close(ch)
			delete(f.subs, id)
		}
		f.mu.Unlock()

		f.log.Infof("Snapshot feed on channel %s stopped", f.channel)
	}
}

// NotifyChanged publishes a change notification so every feed instance
// (this process included) reloads and re-delivers the collection.
func (f *SnapshotFeed[T]) NotifyChanged(ctx context.Context) error {
	if err := f.redisClient.Publish(ctx, f.channel, "changed").Err(); err != nil {
		return fmt.Errorf("publish %s: %w", f.channel, err)
	}
	return nil
}

// Subscribe registers a new subscriber. The returned channel immediately
// carries the latest snapshot when one is known, then every subsequent one.
// The cancel func unregisters the subscriber and closes the channel.
func (f *SnapshotFeed[T]) Subscribe() (<-chan []T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextSub
	f.nextSub++

	// Buffer of one: deliver asynchronously, keep only the newest.
	ch := make(chan []T, 1)
	f.subs[id] = ch

	if f.hasLast {
		ch <- f.last
	}

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (f *SnapshotFeed[T]) listen(pubsub *redis.PubSub) {
	defer f.wg.Done()
	defer pubsub.Close()

	messages := pubsub.Channel()
	for {
		select {
		case <-f.stopChan:
			return
		case _, ok := <-messages:
			if !ok {
				return
			}
			f.refresh()
		}
	}
}

func (f *SnapshotFeed[T]) refresh() {
	ctx := context.Background()
	snapshot, err := f.load(ctx)
	if err != nil {
		// Transient sync error: keep the last-known-good snapshot.
		f.log.Warnf("Failed to reload %s snapshot, keeping previous: %+v", f.channel, err)
		return
	}
	f.broadcast(snapshot)
}

func (f *SnapshotFeed[T]) broadcast(snapshot []T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.last = snapshot
	f.hasLast = true

	for _, ch := range f.subs {
		select {
		case ch <- snapshot:
		default:
			// Subscriber still holds an unread snapshot; replace it.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}
