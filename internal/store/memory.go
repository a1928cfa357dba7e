// Package store keeps completed assessment batches in memory so the HTTP
// layer can serve the latest batch without recomputing per request.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/guaibalabs/weather-risk/internal/domain"
)

// ErrEmpty is returned before the first batch has been saved.
var ErrEmpty = errors.New("no completed batch available")

// Batch is one completed assessment run over the whole catalog.
type Batch struct {
	Results     []domain.CityResult `json:"results"`
	CompletedAt time.Time           `json:"completed_at"`
}

// MemoryStore is a concurrency-safe bounded history of batches.
type MemoryStore struct {
	mu      sync.RWMutex
	batches []Batch

	maxHistory int           // <=0 means unlimited
	maxAge     time.Duration // 0 means unlimited
}

// NewMemoryStore creates a store with optional retention limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{maxHistory: maxHistory, maxAge: maxAge}
}

// Save appends a batch and enforces retention.
func (s *MemoryStore) Save(batch Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches = append(s.batches, batch)

	if s.maxHistory > 0 && len(s.batches) > s.maxHistory {
		over := len(s.batches) - s.maxHistory
		s.batches = s.batches[over:]
	}

	if s.maxAge > 0 {
		cutoff := domain.Clock().Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.batches)-1; i++ { // always keep at least the newest
			if !s.batches[i].CompletedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.batches = s.batches[i:]
		}
	}
}

// Latest returns the most recent batch.
func (s *MemoryStore) Latest() (Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.batches) == 0 {
		return Batch{}, ErrEmpty
	}
	return s.batches[len(s.batches)-1], nil
}

// History returns all retained batches, oldest first.
func (s *MemoryStore) History() []Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Batch, len(s.batches))
	copy(out, s.batches)
	return out
}
