package view

import (
	"sync"
	"sync/atomic"
	"time"

	"er-finder/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for sweeping idle sessions
	sessionSweepInterval = 10 * time.Minute

	// How long a session must be untouched before eviction
	sessionIdleThreshold = 30 * time.Minute
)

// DirectorySource is the subscription end of the hospital feed.
type DirectorySource interface {
	Subscribe() (<-chan []entity.Hospital, func())
}

// Handle bundles one device's session with the collaborators the delivery
// layer talks to directly: its marker board and its location inbox.
type Handle struct {
	Session  *Session
	Board    *MarkerBoard
	Location *LocationStore
}

// managedHandle couples a handle with its feed subscription and an idle
// timestamp for eviction.
type managedHandle struct {
	handle   *Handle
	cancel   func()
	lastUsed atomic.Int64 // Unix timestamp
}

// SessionManager owns one map session per device id. Each session gets its
// own directory subscription; idle sessions are swept in the background so
// abandoned devices do not pin subscriptions forever.
type SessionManager struct {
	source    DirectorySource
	newHandle func() *Handle
	log       *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*managedHandle

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewSessionManager creates a SessionManager and starts its background
// sweep goroutine. Call Stop() during graceful shutdown.
func NewSessionManager(source DirectorySource, newHandle func() *Handle, log *logrus.Logger) *SessionManager {
	m := &SessionManager{
		source:    source,
		newHandle: newHandle,
		log:       log,
		sessions:  make(map[string]*managedHandle),
		stopChan:  make(chan struct{}),
	}

	m.wg.Add(1)
	go m.sweepLoop()

	return m
}

// Get returns the device's handle, creating and subscribing its session on
// first use.
func (m *SessionManager) Get(deviceID string) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mh, ok := m.sessions[deviceID]; ok {
		mh.lastUsed.Store(time.Now().Unix())
		return mh.handle
	}

	handle := m.newHandle()
	snapshots, cancel := m.source.Subscribe()

	mh := &managedHandle{handle: handle, cancel: cancel}
	mh.lastUsed.Store(time.Now().Unix())
	m.sessions[deviceID] = mh

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for snapshot := range snapshots {
			handle.Session.ApplySnapshot(snapshot)
		}
	}()

	m.log.Infof("Map session created for device %s", deviceID)
	return handle
}

// Stop cancels every subscription and waits for the forwarding goroutines.
// Safe to call multiple times.
func (m *SessionManager) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)

		m.mu.Lock()
		for deviceID, mh := range m.sessions {
			mh.cancel()
			delete(m.sessions, deviceID)
		}
		m.mu.Unlock()

		m.wg.Wait()
		m.log.Info("SessionManager stopped")
	}
}

func (m *SessionManager) sweepLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.evictIdleSessions()
		}
	}
}

func (m *SessionManager) evictIdleSessions() {
	cutoff := time.Now().Add(-sessionIdleThreshold).Unix()
	var evicted int

	m.mu.Lock()
	for deviceID, mh := range m.sessions {
		if mh.lastUsed.Load() < cutoff {
			mh.cancel()
			delete(m.sessions, deviceID)
			evicted++
		}
	}
	m.mu.Unlock()

	if evicted > 0 {
		m.log.Debugf("Evicted %d idle map sessions", evicted)
	}
}
