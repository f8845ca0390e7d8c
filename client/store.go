package client

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	fetchedAt time.Time
	writeSeq  uint64 // sequence of the request whose result is stored
	staleSeq  uint64 // sequence at the time of the last invalidation
}

// Store is the in-process cache of server-owned entities, keyed by request
// key (entity type + serialized filter parameters). All writes flow through
// Write/Reconcile/Rollback; consumers never mutate cached values in place.
//
// Ordering guarantee: every request draws a sequence number when issued, and
// a result only lands if no result from a later-issued request (or an
// optimistic write) is already present. A slow response from an old request
// can never clobber newer data.
type Store struct {
	mu      sync.RWMutex
	seq     uint64
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// NextSeq allocates the sequence number for a request about to be issued
func (s *Store) NextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Get returns the cached value and its fetch time, if present
func (s *Store) Get(key string) (interface{}, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return e.value, e.fetchedAt, true
}

// IsStale reports whether a key needs a refresh: missing, older than
// maxAge, or explicitly invalidated since it was last written.
func (s *Store) IsStale(key string, maxAge time.Duration, now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return true
	}
	if e.staleSeq > e.writeSeq {
		return true
	}
	return now.Sub(e.fetchedAt) > maxAge
}

// Write stores a fetch result. It returns false when the result was
// superseded (a later-issued request or optimistic write already landed) and
// was discarded. The second return reports whether the key was invalidated
// while the request was in flight, in which case the caller should issue an
// immediate re-fetch.
func (s *Store) Write(key string, value interface{}, seq uint64, now time.Time) (stored, refetch bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	if seq < e.writeSeq {
		return false, false
	}

	e.value = value
	e.fetchedAt = now
	e.writeSeq = seq
	return true, e.staleSeq > seq
}

// Invalidate marks a key stale without dropping its value; the next read
// serves the old data and triggers a refresh.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		s.seq++
		e.staleSeq = s.seq
	}
}

// InvalidatePrefix marks every key with the given prefix stale. Mutations
// use this to flag all dependent list pages, counts and stats.
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	for key, e := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			e.staleSeq = s.seq
		}
	}
}

// Snapshot is the pre-mutation state captured by SetOptimistic, used to
// restore the cache when the mutation fails.
type Snapshot struct {
	Key       string
	value     interface{}
	fetchedAt time.Time
	writeSeq  uint64
}

// SetOptimistic applies a local patch to a cached entity before the network
// call resolves, returning the snapshot needed to roll it back. Patching a
// key that is not cached is a no-op (ok=false); there is nothing to patch
// and nothing to roll back.
func (s *Store) SetOptimistic(key string, patch func(old interface{}) interface{}) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Snapshot{}, false
	}

	snap := Snapshot{Key: key, value: e.value, fetchedAt: e.fetchedAt, writeSeq: e.writeSeq}

	// The optimistic value takes a fresh sequence so in-flight reads issued
	// earlier cannot overwrite it.
	s.seq++
	e.value = patch(e.value)
	e.writeSeq = s.seq
	return snap, true
}

// Reconcile replaces an optimistic (or stale) value with the authoritative
// server value.
func (s *Store) Reconcile(key string, value interface{}, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	s.seq++
	e.value = value
	e.fetchedAt = now
	e.writeSeq = s.seq
	e.staleSeq = 0
}

// Rollback restores the pre-mutation snapshot after a failed mutation
func (s *Store) Rollback(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[snap.Key]
	if !ok {
		return
	}
	// The restored value is the most recent knowledge; give it a fresh
	// sequence so a pre-mutation in-flight read does not double back.
	s.seq++
	e.value = snap.value
	e.fetchedAt = snap.fetchedAt
	e.writeSeq = s.seq
}
