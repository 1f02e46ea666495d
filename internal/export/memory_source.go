package export

import (
	"context"
	"sync"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// MemorySource serves a canned export, with optional scripted failures. It is
// used by tests and by the server's in-memory mode.
type MemorySource struct {
	mu       sync.Mutex
	export   domain.Export
	fetchErr error
	pingErr  error
	fetches  int
}

// NewMemorySource builds a source returning the given export.
func NewMemorySource(exp domain.Export) *MemorySource {
	return &MemorySource{export: exp}
}

// FailFetch makes subsequent Fetch calls return err.
func (s *MemorySource) FailFetch(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
}

// FailPing makes subsequent Ping calls return err.
func (s *MemorySource) FailPing(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}

// Fetch returns the canned export or the scripted error.
func (s *MemorySource) Fetch(_ context.Context) (domain.Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.fetchErr != nil {
		return domain.Export{}, s.fetchErr
	}
	return s.export, nil
}

// Ping returns the scripted ping error, if any.
func (s *MemorySource) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pingErr
}

// Fetches reports how many times Fetch has been called.
func (s *MemorySource) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}
