package outbox

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process outbox used with the memory storage driver.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	events []Event
	leases map[int64]time.Time
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{leases: map[int64]time.Time{}, now: time.Now}
}

func (s *MemoryStore) Append(e Event) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	e.Status = StatusPending
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	s.events = append(s.events, e)
	return e.ID
}

func (s *MemoryStore) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *MemoryStore) LockBatch(_ context.Context, _ string, batchSize, maxRetries int, lease time.Duration) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var out []Event
	for i := range s.events {
		if len(out) >= batchSize {
			break
		}
		e := &s.events[i]
		switch e.Status {
		case StatusPending:
		case StatusInProgress:
			if !now.After(s.leases[e.ID]) {
				continue
			}
		case StatusFailed:
			if e.RetryCount >= maxRetries {
				continue
			}
		default:
			continue
		}
		e.Status = StatusInProgress
		s.leases[e.ID] = now.Add(lease)
		out = append(out, *e)
	}
	return out, nil
}

func (s *MemoryStore) MarkSent(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if e := s.find(id); e != nil {
			e.Status = StatusSent
			delete(s.leases, id)
		}
	}
	return nil
}

func (s *MemoryStore) MarkFailed(_ context.Context, id int64, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.find(id); e != nil {
		e.Status = StatusFailed
		e.RetryCount++
		e.LastError = &errMsg
		delete(s.leases, id)
	}
	return nil
}

func (s *MemoryStore) find(id int64) *Event {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i]
		}
	}
	return nil
}
