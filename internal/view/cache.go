package view

import (
	"sync"

	"er-finder/internal/domain/entity"
)

// Cache mirrors the latest known full set of hospitals delivered by the
// directory feed. Every snapshot replaces the previous list wholesale;
// nothing is diffed or merged. A failed snapshot load never reaches the
// cache, so it holds the last-known-good state across transient errors.
type Cache struct {
	mu        sync.RWMutex
	hospitals []entity.Hospital
}

func NewCache() *Cache {
	return &Cache{}
}

// ReplaceAll discards the previous list in favor of the snapshot.
func (c *Cache) ReplaceAll(hospitals []entity.Hospital) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hospitals = hospitals
}

// All returns a copy of the current list in snapshot order.
func (c *Cache) All() []entity.Hospital {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Hospital, len(c.hospitals))
	copy(out, c.hospitals)
	return out
}

// Get looks a hospital up by directory key.
func (c *Cache) Get(id string) (*entity.Hospital, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.hospitals {
		if c.hospitals[i].ID == id {
			h := c.hospitals[i]
			return &h, true
		}
	}
	return nil, false
}
