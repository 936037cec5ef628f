package view

import (
	"context"
	"sync"

	"er-finder/internal/domain/entity"
)

// LocationStore is a LocationProvider fed by device-reported fixes. It
// answers with the last reported location, which may be absent.
type LocationStore struct {
	mu  sync.Mutex
	loc *entity.Location
}

func NewLocationStore() *LocationStore {
	return &LocationStore{}
}

func (s *LocationStore) Update(loc entity.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = &loc
}

func (s *LocationStore) LastKnownLocation(ctx context.Context) (*entity.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loc == nil {
		return nil, nil
	}
	loc := *s.loc
	return &loc, nil
}
