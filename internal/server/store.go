package server

import (
	"sync"

	"github.com/hirelens/hirelens/internal/types"
)

// defaultStoreCapacity bounds the store when the configured capacity is
// not positive.
const defaultStoreCapacity = 100

// analysisStore keeps completed analyses in memory, keyed by analysis ID.
// When the capacity is reached the oldest analysis is evicted. Contents are
// lost on restart.
type analysisStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	items    map[string]*types.AnalysisContext
}

func newAnalysisStore(capacity int) *analysisStore {
	if capacity < 1 {
		capacity = defaultStoreCapacity
	}
	return &analysisStore{
		capacity: capacity,
		items:    make(map[string]*types.AnalysisContext, capacity),
	}
}

// Put stores a completed analysis, evicting the oldest entry at capacity.
func (s *analysisStore) Put(ac *types.AnalysisContext) {
	id := ac.AnalysisID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		if len(s.order) >= s.capacity {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.items, oldest)
		}
		s.order = append(s.order, id)
	}
	s.items[id] = ac
}

// Get returns the stored analysis for id.
func (s *analysisStore) Get(id string) (*types.AnalysisContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ac, ok := s.items[id]
	return ac, ok
}

// Len returns the number of stored analyses.
func (s *analysisStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}
