package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"er-finder/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// memCollection is a Loader backed by a mutable in-memory slice.
type memCollection struct {
	mu   sync.Mutex
	data []string
	err  error
}

func (c *memCollection) load(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	out := make([]string, len(c.data))
	copy(out, c.data)
	return out, nil
}

func (c *memCollection) set(data []string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.err = err
}

func newTestFeed(t *testing.T) (*service.SnapshotFeed[string], *memCollection) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	collection := &memCollection{data: []string{"a"}}
	feed := service.NewSnapshotFeed(client, "test:changed", collection.load, testLogger())
	require.NoError(t, feed.Start(context.Background()))
	t.Cleanup(feed.Stop)

	return feed, collection
}

// receive waits for the next snapshot matching want, tolerating superseded
// intermediates.
func receive(t *testing.T, ch <-chan []string, want []string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				t.Fatal("subscriber channel closed")
			}
			if len(snapshot) == len(want) {
				require.Equal(t, want, snapshot)
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot %v", want)
		}
	}
}

func TestSnapshotFeed_SubscriberGetsInitialSnapshot(t *testing.T) {
	feed, _ := newTestFeed(t)

	ch, cancel := feed.Subscribe()
	defer cancel()

	receive(t, ch, []string{"a"})
}

func TestSnapshotFeed_NotifyReloadsAndDelivers(t *testing.T) {
	feed, collection := newTestFeed(t)

	ch, cancel := feed.Subscribe()
	defer cancel()
	receive(t, ch, []string{"a"})

	collection.set([]string{"a", "b"}, nil)
	require.NoError(t, feed.NotifyChanged(context.Background()))

	receive(t, ch, []string{"a", "b"})
}

func TestSnapshotFeed_FailedReloadKeepsLastKnownGood(t *testing.T) {
	feed, collection := newTestFeed(t)

	ch, cancel := feed.Subscribe()
	defer cancel()
	receive(t, ch, []string{"a"})

	collection.set(nil, errors.New("connection reset"))
	require.NoError(t, feed.NotifyChanged(context.Background()))

	// A late subscriber still sees the last good snapshot.
	late, cancelLate := feed.Subscribe()
	defer cancelLate()
	receive(t, late, []string{"a"})

	// After the store recovers the next notification flows through.
	collection.set([]string{"a", "b", "c"}, nil)
	require.NoError(t, feed.NotifyChanged(context.Background()))
	receive(t, ch, []string{"a", "b", "c"})
}

func TestSnapshotFeed_SlowSubscriberGetsLatestOnly(t *testing.T) {
	feed, collection := newTestFeed(t)

	// Never drained: the single-slot buffer holds the initial snapshot.
	ch, cancel := feed.Subscribe()
	defer cancel()

	collection.set([]string{"a", "b"}, nil)
	require.NoError(t, feed.NotifyChanged(context.Background()))

	// The buffered initial snapshot is superseded, not queued behind.
	receive(t, ch, []string{"a", "b"})
}

func TestSnapshotFeed_CancelUnsubscribes(t *testing.T) {
	feed, _ := newTestFeed(t)

	ch, cancel := feed.Subscribe()
	receive(t, ch, []string{"a"})

	cancel()
	cancel() // repeated cancel is a no-op

	_, ok := <-ch
	require.False(t, ok)
}

func TestSnapshotFeed_StopClosesSubscribers(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	collection := &memCollection{data: []string{"a"}}
	feed := service.NewSnapshotFeed(client, "test:changed", collection.load, testLogger())
	require.NoError(t, feed.Start(context.Background()))

	ch, _ := feed.Subscribe()
	receive(t, ch, []string{"a"})

	feed.Stop()
	feed.Stop() // idempotent

	_, ok := <-ch
	require.False(t, ok)
}

func TestSnapshotFeed_InitialLoadFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	collection := &memCollection{err: errors.New("connection reset")}
	feed := service.NewSnapshotFeed(client, "test:changed", collection.load, testLogger())

	require.Error(t, feed.Start(context.Background()))
}
