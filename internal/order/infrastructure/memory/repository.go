// Package memory keeps orders and their outbox in process.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmehra2102/grocery-order-service/internal/order/application"
	"github.com/dmehra2102/grocery-order-service/internal/order/domain"
	"github.com/dmehra2102/grocery-order-service/pkg/outbox"
)

type stored struct {
	userID string
	raw    []byte
}

type Repository struct {
	mu     sync.RWMutex
	orders map[string]stored
	ids    []string
	outbox *outbox.MemoryStore
}

// NewRepository appends events to box, which a relay may drain.
func NewRepository(box *outbox.MemoryStore) *Repository {
	return &Repository{orders: make(map[string]stored), outbox: box}
}

func (r *Repository) NewID() string {
	return uuid.NewString()
}

func (r *Repository) Create(_ context.Context, id, userID string, doc domain.Document, event outbox.Event) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; ok {
		return fmt.Errorf("order %s already exists", id)
	}
	r.orders[id] = stored{userID: userID, raw: raw}
	r.ids = append(r.ids, id)
	r.outbox.Append(event)
	return nil
}

func (r *Repository) Get(_ context.Context, id string) (domain.Document, error) {
	r.mu.RLock()
	s, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return decode(s.raw)
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]application.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []application.Record
	for _, id := range r.ids {
		s := r.orders[id]
		if s.userID != userID {
			continue
		}
		doc, err := decode(s.raw)
		if err != nil {
			return nil, err
		}
		out = append(out, application.Record{ID: id, Doc: doc})
	}
	return out, nil
}

func (r *Repository) Update(_ context.Context, id string, doc domain.Document, event outbox.Event) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	s.raw = raw
	r.orders[id] = s
	r.outbox.Append(event)
	return nil
}

func decode(raw []byte) (domain.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return doc, nil
}
