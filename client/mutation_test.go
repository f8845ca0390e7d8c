package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.failures = append(n.failures, message) }

func togglePatch(old interface{}) interface{} {
	faq := old.(FAQ)
	faq.IsPublished = !faq.IsPublished
	return faq
}

func TestMutationFailureRollsBackAndNotifies(t *testing.T) {
	store := NewStore()
	notifier := &recordingNotifier{}
	mutations := NewMutations(store, notifier)

	store.Reconcile("faqs/1", FAQ{ID: 1, IsPublished: false}, time.Now())

	_, err := mutations.Run(context.Background(), Mutation{
		Description:   "Toggle publish",
		OptimisticKey: "faqs/1",
		Patch:         togglePatch,
		Call: func(ctx context.Context) (interface{}, error) {
			// The optimistic value must be visible while the call is in flight.
			value, _, _ := store.Get("faqs/1")
			assert.True(t, value.(FAQ).IsPublished)
			return nil, errors.New("server rejected")
		},
	})
	require.Error(t, err)

	value, _, _ := store.Get("faqs/1")
	assert.False(t, value.(FAQ).IsPublished, "failed mutation restores the pre-mutation value")
	require.Len(t, notifier.failures, 1)
	assert.Contains(t, notifier.failures[0], "Toggle publish failed")
	assert.Empty(t, notifier.successes)
}

func TestMutationSuccessReconcilesAndInvalidates(t *testing.T) {
	store := NewStore()
	notifier := &recordingNotifier{}
	mutations := NewMutations(store, notifier)
	now := time.Now()

	store.Reconcile("faqs/1", FAQ{ID: 1, IsPublished: false, Helpful: 3}, now)
	store.Write("faqs?page=1", "list", store.NextSeq(), now)
	store.Write("categories", "cats", store.NextSeq(), now)

	result, err := mutations.Run(context.Background(), Mutation{
		Description:   "Toggle publish",
		OptimisticKey: "faqs/1",
		Patch:         togglePatch,
		Call: func(ctx context.Context) (interface{}, error) {
			return FAQ{ID: 1, IsPublished: true, Helpful: 4}, nil
		},
		InvalidatePrefixes: []string{"faqs?", "categories"},
	})
	require.NoError(t, err)

	// The cache holds the server value, not the optimistic guess.
	value, _, _ := store.Get("faqs/1")
	assert.Equal(t, 4, value.(FAQ).Helpful)

	assert.True(t, store.IsStale("faqs?page=1", time.Hour, now))
	assert.True(t, store.IsStale("categories", time.Hour, now))
	assert.False(t, store.IsStale("faqs/1", time.Hour, now))

	assert.Equal(t, FAQ{ID: 1, IsPublished: true, Helpful: 4}, result)
	require.Len(t, notifier.successes, 1)
}

func TestMutationNilResultInvalidatesOptimisticKey(t *testing.T) {
	store := NewStore()
	mutations := NewMutations(store, &recordingNotifier{})
	now := time.Now()

	store.Reconcile("faqs/1", FAQ{ID: 1}, now)

	_, err := mutations.Run(context.Background(), Mutation{
		Description:   "Delete FAQ",
		OptimisticKey: "faqs/1",
		Patch:         func(old interface{}) interface{} { return old },
		Call: func(ctx context.Context) (interface{}, error) {
			return nil, nil
		},
	})
	require.NoError(t, err)
	assert.True(t, store.IsStale("faqs/1", time.Hour, now), "no server value means the key must refetch")
}

func TestMutationPanicRestoresSnapshot(t *testing.T) {
	store := NewStore()
	mutations := NewMutations(store, &recordingNotifier{})

	store.Reconcile("faqs/1", FAQ{ID: 1, IsPublished: false}, time.Now())

	require.Panics(t, func() {
		mutations.Run(context.Background(), Mutation{
			OptimisticKey: "faqs/1",
			Patch:         togglePatch,
			Call: func(ctx context.Context) (interface{}, error) {
				panic("mid-mutation failure")
			},
		})
	})

	value, _, _ := store.Get("faqs/1")
	assert.False(t, value.(FAQ).IsPublished, "a panic must not leave the optimistic value behind")
}

func TestMutationWithoutCallErrors(t *testing.T) {
	mutations := NewMutations(NewStore(), &recordingNotifier{})
	_, err := mutations.Run(context.Background(), Mutation{Description: "broken"})
	assert.Error(t, err)
}

func TestMutationUncachedOptimisticKeyStillRuns(t *testing.T) {
	store := NewStore()
	notifier := &recordingNotifier{}
	mutations := NewMutations(store, notifier)

	result, err := mutations.Run(context.Background(), Mutation{
		Description:   "Toggle publish",
		OptimisticKey: "faqs/99",
		Patch:         togglePatch,
		Call: func(ctx context.Context) (interface{}, error) {
			return FAQ{ID: 99, IsPublished: true}, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, FAQ{ID: 99, IsPublished: true}, result)

	// The authoritative result lands even though nothing was patched.
	value, _, ok := store.Get("faqs/99")
	require.True(t, ok)
	assert.True(t, value.(FAQ).IsPublished)
}
