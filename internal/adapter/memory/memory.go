// Package memory implements the in-process, append-only reading store.
package memory

import (
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"

	"glucolog/internal/domain"
)

// Store is an append-only, ordered sequence of readings. Readers always see
// a consistent prefix of what has been appended.
type Store struct {
	mu       sync.RWMutex
	readings []domain.Reading
	version  uint64

	subs   map[int]chan domain.StoreEvent
	nextID int

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		subs: make(map[int]chan domain.StoreEvent),
		now:  time.Now,
	}
}

// Ensure interfaces are met.
var _ domain.ReadingStore = (*Store)(nil)

// Append stores r at the end of the sequence and returns the stored copy.
// A zero ID is replaced by a time-ordered UUID and a zero CreatedAt by the
// current time.
func (s *Store) Append(r domain.Reading) domain.Reading {
	if r.ID == uuid.Nil {
		r.ID = newID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, r)
	s.version++
	ev := domain.StoreEvent{Version: s.version, Reading: r}
	for _, ch := range s.subs {
		// A full buffer already holds a pending notification.
		select {
		case ch <- ev:
		default:
		}
	}
	return r
}

// snapshot returns the current prefix. Elements below len are never
// rewritten, so the returned slice is safe to read without the lock.
func (s *Store) snapshot() []domain.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.readings)
	return s.readings[:n:n]
}

// All returns a copy of every reading in insertion order.
func (s *Store) All() []domain.Reading {
	snap := s.snapshot()
	out := make([]domain.Reading, len(snap))
	copy(out, snap)
	return out
}

// Filter lazily yields the readings accepted by match, in insertion order.
// The sequence iterates the snapshot taken when iteration starts.
func (s *Store) Filter(match domain.Predicate) iter.Seq[domain.Reading] {
	return func(yield func(domain.Reading) bool) {
		for _, r := range s.snapshot() {
			if match != nil && !match(r) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of stored readings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

// Version increments once per append; pollers compare it to detect changes.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers for change notifications. The returned cancel func
// unregisters and closes the channel; it is safe to call more than once.
func (s *Store) Subscribe(buffer int) (<-chan domain.StoreEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.StoreEvent, buffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
