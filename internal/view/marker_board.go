package view

import (
	"sync"

	"er-finder/internal/domain/entity"
)

// MarkerBoard is the MarkerLayer used by the HTTP delivery: it keeps the
// last rendered list so the session surface can serve it, and forwards
// selection events to the callback of the render they belong to. A
// selection arriving after a newer render already replaced its list is
// dropped.
type MarkerBoard struct {
	mu       sync.Mutex
	rendered []entity.Hospital
	onSelect func(hospitalID string)
}

func NewMarkerBoard() *MarkerBoard {
	return &MarkerBoard{}
}

func (b *MarkerBoard) Render(hospitals []entity.Hospital, onSelect func(hospitalID string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rendered = hospitals
	b.onSelect = onSelect
}

// Markers returns the currently displayed hospitals.
func (b *MarkerBoard) Markers() []entity.Hospital {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.Hospital, len(b.rendered))
	copy(out, b.rendered)
	return out
}

// Select dispatches a selection event for the given marker. Returns false
// when the id is not part of the current render.
func (b *MarkerBoard) Select(hospitalID string) bool {
	b.mu.Lock()
	var onSelect func(string)
	for i := range b.rendered {
		if b.rendered[i].ID == hospitalID {
			onSelect = b.onSelect
			break
		}
	}
	b.mu.Unlock()

	if onSelect == nil {
		return false
	}
	onSelect(hospitalID)
	return true
}
