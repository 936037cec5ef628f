package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrKeyNotFound is returned by a KVStore when the key has never been set.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the small key-value surface the identity service persists
// through. Backed by Redis in production and by an in-memory fake in tests.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// DeviceIdentity lazily generates a random identifier on first use and
// persists it in the injected store, so the same value is returned for the
// life of the installation. Concurrent first use is serialized; whichever
// generated value is persisted first wins and is reused afterwards.
type DeviceIdentity struct {
	store KVStore
	key   string
	log   *logrus.Logger

	mu     sync.Mutex
	cached string
}

func NewDeviceIdentity(store KVStore, key string, log *logrus.Logger) *DeviceIdentity {
	return &DeviceIdentity{
		store: store,
		key:   key,
		log:   log,
	}
}

// ID returns the stable identifier, generating and persisting one if the
// store is empty.
func (d *DeviceIdentity) ID(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cached != "" {
		return d.cached, nil
	}

	value, err := d.store.Get(ctx, d.key)
	if err == nil {
		d.cached = value
		return value, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return "", fmt.Errorf("read identity: %w", err)
	}

	value = uuid.NewString()
	if err := d.store.Set(ctx, d.key, value); err != nil {
		return "", fmt.Errorf("persist identity: %w", err)
	}

	d.cached = value
	d.log.Infof("Generated new device identity under key %s", d.key)
	return value, nil
}
