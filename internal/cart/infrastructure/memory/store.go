// Package memory keeps cart documents in process. Documents are held as
// encoded JSON so reads see the same number handling as the Postgres store.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmehra2102/grocery-order-service/internal/cart/domain"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewStore() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Load(_ context.Context, userID string) (domain.Document, error) {
	s.mu.RLock()
	raw, ok := s.docs[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", userID, err)
	}
	return doc, nil
}

func (s *Store) Save(_ context.Context, userID string, doc domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", userID, err)
	}
	s.mu.Lock()
	s.docs[userID] = raw
	s.mu.Unlock()
	return nil
}

// Put stores a raw document, bypassing encoding. Used to seed odd shapes.
func (s *Store) Put(userID string, raw []byte) {
	s.mu.Lock()
	s.docs[userID] = raw
	s.mu.Unlock()
}
