package view_test

import (
	"sync"
	"testing"
	"time"

	"er-finder/internal/domain/entity"
	"er-finder/internal/view"

	"github.com/stretchr/testify/require"
)

// fakeSource hands every subscriber its own channel and records cancels.
type fakeSource struct {
	mu        sync.Mutex
	channels  []chan []entity.Hospital
	cancelled int
}

func (s *fakeSource) Subscribe() (<-chan []entity.Hospital, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan []entity.Hospital, 1)
	s.channels = append(s.channels, ch)
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			s.cancelled++
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *fakeSource) push(snapshot []entity.Hospital) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.channels {
		ch <- snapshot
	}
}

func newTestManager(t *testing.T) (*view.SessionManager, *fakeSource) {
	t.Helper()
	source := &fakeSource{}
	manager := view.NewSessionManager(source, func() *view.Handle {
		board := view.NewMarkerBoard()
		locations := view.NewLocationStore()
		return &view.Handle{
			Session:  view.NewSession(board, locations, testRadiusMeters, testHome, testLogger()),
			Board:    board,
			Location: locations,
		}
	}, testLogger())
	t.Cleanup(manager.Stop)
	return manager, source
}

func TestSessionManager_GetIsPerDevice(t *testing.T) {
	manager, _ := newTestManager(t)

	a := manager.Get("device-a")
	b := manager.Get("device-b")

	require.NotSame(t, a, b)
	require.Same(t, a, manager.Get("device-a"))
}

func TestSessionManager_SnapshotsReachSession(t *testing.T) {
	manager, source := newTestManager(t)
	handle := manager.Get("device-a")

	source.push(filterFixture())

	require.Eventually(t, func() bool {
		return len(handle.Session.State().Hospitals) == 3
	}, time.Second, 10*time.Millisecond)
}

func TestSessionManager_StopCancelsSubscriptions(t *testing.T) {
	manager, source := newTestManager(t)
	manager.Get("device-a")
	manager.Get("device-b")

	manager.Stop()

	source.mu.Lock()
	defer source.mu.Unlock()
	require.Equal(t, 2, source.cancelled)
}
