package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kleinski/full-planes/internal/models"
)

// maxStoredResults caps the in-memory result sets kept for CSV export.
// Oldest entries are evicted first; nothing survives a restart.
const maxStoredResults = 100

// resultStore keeps recent search result sets in memory, keyed by ID, so
// the results page can offer a CSV download without re-running the search.
type resultStore struct {
	mu      sync.Mutex
	results map[string][]models.EnrichedFlightOffer
	order   []string
}

func newResultStore() *resultStore {
	return &resultStore{
		results: make(map[string][]models.EnrichedFlightOffer),
	}
}

// Put stores a result set and returns its ID.
func (s *resultStore) Put(offers []models.EnrichedFlightOffer) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.results[id] = offers
	s.order = append(s.order, id)

	for len(s.order) > maxStoredResults {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}

	return id
}

// Get returns the result set for an ID, if still stored.
func (s *resultStore) Get(id string) ([]models.EnrichedFlightOffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, ok := s.results[id]
	return offers, ok
}
