package dedup

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local set cleared wholesale every window. An id
// marked just before a clear is forgotten early; that is acceptable for
// retry suppression.
type MemoryStore struct {
	mu     sync.Mutex
	ids    map[string]struct{}
	window time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryStore{ids: make(map[string]struct{}), window: window}
}

func (s *MemoryStore) Seen(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok, nil
}

func (s *MemoryStore) MarkSeen(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return true, nil
	}
	s.ids[id] = struct{}{}
	return false, nil
}

func (s *MemoryStore) Forget(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of ids currently held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Clear drops every id.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.ids = make(map[string]struct{})
	s.mu.Unlock()
}

// Start launches the clear loop. Calling Start twice is a no-op.
func (s *MemoryStore) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

// Stop ends the clear loop and waits for it to exit.
func (s *MemoryStore) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *MemoryStore) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(s.window)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.Clear()
		}
	}
}
