package service

import (
	"sync"

	"tgju-tracker/internal/domain"
)

// SnapshotView holds a read-only copy of the last successfully extracted
// snapshot for the status API. The tracker cycle is its only writer.
type SnapshotView struct {
	mu       sync.RWMutex
	snapshot *domain.PriceSnapshot
}

func NewSnapshotView() *SnapshotView {
	return &SnapshotView{}
}

func (v *SnapshotView) Set(s *domain.PriceSnapshot) {
	cp := copySnapshot(s)
	v.mu.Lock()
	v.snapshot = cp
	v.mu.Unlock()
}

// Latest returns a copy of the current snapshot, or false before the first cycle.
func (v *SnapshotView) Latest() (*domain.PriceSnapshot, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.snapshot == nil {
		return nil, false
	}
	return copySnapshot(v.snapshot), true
}

func copySnapshot(s *domain.PriceSnapshot) *domain.PriceSnapshot {
	if s == nil {
		return nil
	}
	prices := make(map[string]float64, len(s.Prices))
	for k, v := range s.Prices {
		prices[k] = v
	}
	return &domain.PriceSnapshot{Prices: prices, CapturedAt: s.CapturedAt}
}
