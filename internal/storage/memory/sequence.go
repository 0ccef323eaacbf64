package memory

import "sync"

// Sequence hands out identifiers for one entity type: 1, 2, 3, ...
// Values are never handed out twice, deleted records included.
type Sequence struct {
	mu   sync.Mutex
	next int64
}

func NewSequence() *Sequence { return &Sequence{next: 1} }

// Next returns the current value and advances the counter.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}

// peek returns the value the next call to Next will return.
func (s *Sequence) peek() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
