package client

import (
	"context"
	"fmt"
	"time"
)

// Mutation describes one write operation against the server.
//
// OptimisticKey/Patch are optional: when set, the cached entity under that
// key is patched locally before the network call resolves and restored from
// a snapshot if the call fails. Call performs the actual request and returns
// the authoritative server value (or nil for deletes). InvalidatePrefixes
// lists the request-key prefixes whose cached results depend on this entity
// type — list pages, category counts, stats — all marked stale on success.
type Mutation struct {
	Description string

	OptimisticKey string
	Patch         func(old interface{}) interface{}

	Call func(ctx context.Context) (interface{}, error)

	InvalidatePrefixes []string
}

// Mutations is the write side of the sync layer. Mutations are never
// automatically retried; a failure surfaces to the caller, who must
// re-trigger explicitly to avoid duplicate side effects.
type Mutations struct {
	store    *Store
	notifier Notifier
}

func NewMutations(store *Store, notifier Notifier) *Mutations {
	if notifier == nil {
		notifier = LogNotifier()
	}
	return &Mutations{store: store, notifier: notifier}
}

// Run executes a mutation as a three-phase transaction: snapshot + optimistic
// patch, network call, then commit (reconcile + invalidate) or rollback. The
// snapshot is restored even when the call panics, before the panic resumes.
func (m *Mutations) Run(ctx context.Context, mut Mutation) (interface{}, error) {
	if mut.Call == nil {
		return nil, fmt.Errorf("mutation %q has no call", mut.Description)
	}

	var snap Snapshot
	patched := false
	if mut.OptimisticKey != "" && mut.Patch != nil {
		snap, patched = m.store.SetOptimistic(mut.OptimisticKey, mut.Patch)
	}

	committed := false
	defer func() {
		// A panic mid-mutation must not leave the optimistic value behind.
		if patched && !committed {
			m.store.Rollback(snap)
		}
	}()

	result, err := mut.Call(ctx)
	if err != nil {
		if patched {
			m.store.Rollback(snap)
		}
		committed = true // rollback done, keep the deferred path idle
		m.notifier.Error(failureMessage(mut, err))
		return nil, err
	}

	if mut.OptimisticKey != "" {
		if result != nil {
			m.store.Reconcile(mut.OptimisticKey, result, time.Now())
		} else {
			m.store.Invalidate(mut.OptimisticKey)
		}
	}
	for _, prefix := range mut.InvalidatePrefixes {
		m.store.InvalidatePrefix(prefix)
	}
	committed = true

	m.notifier.Success(successMessage(mut))
	return result, nil
}

func successMessage(mut Mutation) string {
	if mut.Description == "" {
		return "Saved."
	}
	return mut.Description + " succeeded."
}

func failureMessage(mut Mutation, err error) string {
	desc := mut.Description
	if desc == "" {
		desc = "Request"
	}
	return fmt.Sprintf("%s failed: %v", desc, err)
}
