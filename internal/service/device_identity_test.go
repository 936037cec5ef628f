package service_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"er-finder/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memKV is an in-memory KVStore with injectable failures.
type memKV struct {
	values map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (s *memKV) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", service.ErrKeyNotFound
	}
	return value, nil
}

func (s *memKV) Set(ctx context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.values[key] = value
	return nil
}

func TestDeviceIdentity_GeneratesOnceAndPersists(t *testing.T) {
	store := newMemKV()
	identity := service.NewDeviceIdentity(store, "device:id", testLogger())

	first, err := identity.ID(context.Background())
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(first))

	second, err := identity.ID(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, store.sets)
	require.Equal(t, first, store.values["device:id"])
}

func TestDeviceIdentity_ConcurrentFirstUse(t *testing.T) {
	store := newMemKV()
	identity := service.NewDeviceIdentity(store, "device:id", testLogger())

	const callers = 32
	results := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = identity.ID(context.Background())
		}(i)
	}
	wg.Wait()

	// Exactly one value was generated, persisted once, and handed to
	// every caller.
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, results[0], results[i])
	}
	require.Equal(t, 1, store.sets)
	require.Equal(t, results[0], store.values["device:id"])
}

func TestDeviceIdentity_ReusesStoredValue(t *testing.T) {
	store := newMemKV()
	store.values["device:id"] = "stored-identity"
	identity := service.NewDeviceIdentity(store, "device:id", testLogger())

	got, err := identity.ID(context.Background())

	require.NoError(t, err)
	require.Equal(t, "stored-identity", got)
	require.Zero(t, store.sets)
}

func TestDeviceIdentity_ReadFailure(t *testing.T) {
	store := newMemKV()
	store.getErr = errors.New("connection refused")
	identity := service.NewDeviceIdentity(store, "device:id", testLogger())

	_, err := identity.ID(context.Background())

	require.ErrorContains(t, err, "read identity")
}

func TestDeviceIdentity_PersistFailureDoesNotCache(t *testing.T) {
	store := newMemKV()
	store.setErr = errors.New("connection refused")
	identity := service.NewDeviceIdentity(store, "device:id", testLogger())

	_, err := identity.ID(context.Background())
	require.ErrorContains(t, err, "persist identity")

	// Once the store recovers a value must still be generated and kept.
	store.setErr = nil
	got, err := identity.ID(context.Background())
	require.NoError(t, err)
	require.Equal(t, got, store.values["device:id"])
}
