package position

import (
	"sync"
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// SetCall records one MemoryStore.SetLastPosition invocation.
type SetCall struct {
	Key      string
	Position time.Duration
}

// MemoryStore is an in-process Store, used in tests and when the database
// cannot be opened.
type MemoryStore struct {
	mu        sync.Mutex
	positions map[string]time.Duration
	sets      []SetCall
	gets      []string
	getErr    error
	setErr    error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{positions: make(map[string]time.Duration)}
}

func (s *MemoryStore) GetLastPosition(t playlist.Track) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets = append(s.gets, t.Identity())
	if s.getErr != nil {
		return 0, s.getErr
	}
	pos, ok := s.positions[t.Identity()]
	if !ok {
		return 0, ErrNotFound
	}
	return pos, nil
}

func (s *MemoryStore) SetLastPosition(t playlist.Track, pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = append(s.sets, SetCall{Key: t.Identity(), Position: pos})
	if s.setErr != nil {
		return s.setErr
	}
	s.positions[t.Identity()] = pos
	return nil
}

// Test helpers

func (s *MemoryStore) Put(key string, pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[key] = pos
}

func (s *MemoryStore) SetErrors(get, set error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr, s.setErr = get, set
}

func (s *MemoryStore) Sets() []SetCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SetCall(nil), s.sets...)
}

func (s *MemoryStore) Gets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.gets...)
}

var _ Store = (*MemoryStore)(nil)
