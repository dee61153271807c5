// Package apilog records provider API attempts for the admin log feed.
// Appending must never fail a negotiation: callers log errors and move on.
package apilog

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// MaxEntries caps the retained history; older entries are dropped.
const MaxEntries = 100

// Entry is one provider request/response attempt, including retries.
type Entry struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Kind       string          `json:"kind"`
	Request    json.RawMessage `json:"request,omitempty"`
	Status     int             `json:"status"`
	Response   json.RawMessage `json:"response,omitempty"`
	DurationMs int64           `json:"duration_ms"`
}

// Sink is an append-only store of the most recent API attempts.
type Sink interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

// NewID returns a unique-enough entry id: millisecond timestamp plus a short
// random suffix.
func NewID(now time.Time) string {
	return fmt.Sprintf("%d-%09d", now.UnixMilli(), rand.Int31())
}

// MemorySink keeps the last MaxEntries entries in memory, newest first.
// Safe for concurrent use.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append prepends an entry, discarding the oldest past MaxEntries.
func (s *MemorySink) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *MemorySink) List(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, n)
	copy(out, s.entries[:n])
	return out, nil
}

var _ Sink = (*MemorySink)(nil)
