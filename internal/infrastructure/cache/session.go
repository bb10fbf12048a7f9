package cache

import (
	"fmt"
	"sync"

	"github.com/prodlens/backend/internal/domain"
)

// SessionStore is the process-wide mapping from generated product ID to
// assembled record. It is append-only for the lifetime of the process:
// no eviction, no TTL, and a stored record is never replaced. Identifier
// assignment happens under the same lock as the insert, so IDs are
// monotonic even with concurrent scrapes.
type SessionStore struct {
	mutex   sync.RWMutex
	records map[string]*domain.ProductRecord
	nextID  int
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		records: make(map[string]*domain.ProductRecord),
		nextID:  1,
	}
}

// Add stores record and returns its generated identifier.
func (s *SessionStore) Add(record *domain.ProductRecord) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := fmt.Sprintf("product_%d", s.nextID)
	s.nextID++
	s.records[id] = record
	return id
}

// Get returns the record stored under id.
func (s *SessionStore) Get(id string) (*domain.ProductRecord, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, ok := s.records[id]
	return record, ok
}

// GetAll resolves ids in order, returning the found records and the list
// of identifiers with no entry.
func (s *SessionStore) GetAll(ids []string) ([]*domain.ProductRecord, []string) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := make([]*domain.ProductRecord, 0, len(ids))
	var missing []string
	for _, id := range ids {
		if record, ok := s.records[id]; ok {
			records = append(records, record)
		} else {
			missing = append(missing, id)
		}
	}
	return records, missing
}

// Len returns the number of stored records.
func (s *SessionStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.records)
}
