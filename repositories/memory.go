package repositories

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
)

var _ contract.Store[domain.ActivityRecord] = (*MemoryStore[domain.ActivityRecord])(nil)

// MemoryStore is a plain map. It is not race-safe on its own,
// the event loop serialises every access.
type MemoryStore[V any] struct {
	data map[domain.ParticipantID]V
}

func NewMemoryStore[V any]() *MemoryStore[V] {
	return &MemoryStore[V]{data: make(map[domain.ParticipantID]V)}
}

func (s *MemoryStore[V]) Get(id domain.ParticipantID) (V, bool, error) {
	v, ok := s.data[id]
	return v, ok, nil
}

func (s *MemoryStore[V]) Set(id domain.ParticipantID, value V) error {
	s.data[id] = value
	return nil
}

func (s *MemoryStore[V]) Delete(id domain.ParticipantID) error {
	delete(s.data, id)
	return nil
}

func (s *MemoryStore[V]) Range(fn func(id domain.ParticipantID, value V) bool) error {
	for id, v := range s.data {
		if !fn(id, v) {
			return nil
		}
	}
	return nil
}

func (s *MemoryStore[V]) Len() (int, error) {
	return len(s.data), nil
}

// Stores groups the three time-driven record maps of the trackers.
type Stores struct {
	Activity    contract.Store[domain.ActivityRecord]
	Windows     contract.Store[domain.RateWindow]
	Suspensions contract.Store[domain.SuspensionRecord]
}

func NewMemoryStores() Stores {
	return Stores{
		Activity:    NewMemoryStore[domain.ActivityRecord](),
		Windows:     NewMemoryStore[domain.RateWindow](),
		Suspensions: NewMemoryStore[domain.SuspensionRecord](),
	}
}
