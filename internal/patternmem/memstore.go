package patternmem

import (
	"context"
	"sync"

	"github.com/danielpatrickdp/unwind/go-controller/internal/classifier"
)

// MemStore is an in-memory Store. LoadErr and SaveErr force failures.
type MemStore struct {
	mu        sync.Mutex
	explained []classifier.Pattern
	saves     int

	LoadErr error
	SaveErr error
}

// NewMemStore creates a MemStore seeded with explained.
func NewMemStore(explained ...classifier.Pattern) *MemStore {
	return &MemStore{explained: normalize(explained)}
}

func (s *MemStore) Load(_ context.Context) ([]classifier.Pattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]classifier.Pattern(nil), s.explained...), nil
}

func (s *MemStore) Save(_ context.Context, explained []classifier.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.explained = normalize(explained)
	return nil
}

// Saves returns how many times Save was called, failed calls included.
func (s *MemStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
