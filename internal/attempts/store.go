// Package attempts owns the per-task submission counters. Counters live for
// the process lifetime and are never persisted.
package attempts

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-course/pkg/interfaces"
)

// Store is a concurrent counter map keyed by task id.
type Store struct {
	counts *xsync.MapOf[string, int]
}

var _ interfaces.AttemptStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{counts: xsync.NewMapOf[string, int]()}
}

// Increment adds one to the counter for taskID and returns the new value.
// The read-modify-write runs atomically for the key.
func (s *Store) Increment(taskID string) int {
	value, _ := s.counts.Compute(taskID, func(old int, _ bool) (int, bool) {
		return old + 1, false
	})
	return value
}

// Count returns the current counter, zero when taskID was never submitted.
func (s *Store) Count(taskID string) int {
	value, _ := s.counts.Load(taskID)
	return value
}

// Snapshot copies every counter.
func (s *Store) Snapshot() map[string]int {
	out := make(map[string]int, s.counts.Size())
	s.counts.Range(func(key string, value int) bool {
		out[key] = value
		return true
	})
	return out
}
