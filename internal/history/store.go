// Package history keeps the session-local evaluation log. Entries live
// in memory only; the CSV export is the single way to take them out of
// the process.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry is one evaluated (or failed) item.
type Entry struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	NetProfit  decimal.Decimal `json:"net_profit"`
	MarginPct  decimal.Decimal `json:"margin_pct"`
	SourceLink string          `json:"source_link"`
	Status     string          `json:"status"`
	FailReason string          `json:"fail_reason,omitempty"`
}

// Store is the session history boundary, injected into the pipeline
// instead of living as ambient global state.
type Store interface {
	Append(e Entry) Entry
	List() []Entry
	Clear()
}

// MemoryStore is an append-only in-memory store. Only one request
// mutates it at a time in practice, but it locks anyway so the API
// server can share it.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryStore creates an empty history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records an entry, assigning an id when missing, and returns
// the stored value.
func (s *MemoryStore) Append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return e
}

// List returns a copy of all entries in append order.
func (s *MemoryStore) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear drops all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
