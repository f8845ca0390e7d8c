package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFetch(calls *int32, value interface{}, err error) FetchFunc {
	return func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(calls, 1)
		return value, err
	}
}

func TestFetchMissGoesToNetwork(t *testing.T) {
	queries := NewQueries(NewStore(), nil, 0, 0)

	var calls int32
	value, err := queries.Fetch(context.Background(), "faqs", countingFetch(&calls, "fresh", nil))
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
	assert.EqualValues(t, 1, calls)
}

func TestFetchFreshHitSkipsNetwork(t *testing.T) {
	store := NewStore()
	queries := NewQueries(store, nil, 0, 0)
	store.Write("faqs", "cached", store.NextSeq(), time.Now())

	var calls int32
	value, err := queries.Fetch(context.Background(), "faqs", countingFetch(&calls, "fresh", nil))
	require.NoError(t, err)
	assert.Equal(t, "cached", value)
	assert.EqualValues(t, 0, calls, "a fresh hit must not hit the network")
}

func TestFetchStaleServesCachedAndRevalidates(t *testing.T) {
	store := NewStore()
	queries := NewQueries(store, StalePolicy{"faqs": time.Millisecond}, 0, 0)
	store.Write("faqs", "stale", store.NextSeq(), time.Now().Add(-time.Second))

	done := make(chan struct{})
	value, err := queries.Fetch(context.Background(), "faqs", func(ctx context.Context) (interface{}, error) {
		defer close(done)
		return "revalidated", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", value, "the stale value is served immediately")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background revalidation never ran")
	}

	assert.Eventually(t, func() bool {
		v, _, _ := store.Get("faqs")
		return v == "revalidated"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestFetchDeduplicatesConcurrentReads(t *testing.T) {
	queries := NewQueries(NewStore(), nil, 0, 0)

	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := queries.Fetch(context.Background(), "faqs", fetch)
			assert.NoError(t, err)
			assert.Equal(t, "shared", value)
		}()
	}

	// Let the goroutines pile onto the same key before releasing the fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls, "identical concurrent reads collapse into one request")
}

func TestFetchErrorKeepsCachedValue(t *testing.T) {
	store := NewStore()
	queries := NewQueries(store, StalePolicy{"faqs": time.Millisecond}, 0, 0)
	store.Write("faqs", "last-good", store.NextSeq(), time.Now().Add(-time.Minute))

	value, err := queries.Refresh(context.Background(), "faqs", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("network down")
	})
	require.Error(t, err)
	assert.Equal(t, "last-good", value, "a failed refresh surfaces the error without blanking data")
}

func TestFetchErrorWithoutCacheReturnsError(t *testing.T) {
	queries := NewQueries(NewStore(), nil, 0, 0)

	value, err := queries.Fetch(context.Background(), "faqs", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)
	assert.Nil(t, value)
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	queries := NewQueries(NewStore(), nil, 2, time.Millisecond)

	var calls int32
	value, err := queries.Fetch(context.Background(), "faqs", func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("transient")
		}
		return "third-time", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "third-time", value)
	assert.EqualValues(t, 3, calls)
}

func TestFetchRetriesAreBounded(t *testing.T) {
	queries := NewQueries(NewStore(), nil, 2, time.Millisecond)

	var calls int32
	_, err := queries.Fetch(context.Background(), "faqs", countingFetch(&calls, nil, errors.New("down")))
	require.Error(t, err)
	assert.EqualValues(t, 3, calls, "one attempt plus two retries")
}

func TestFetchCancelledContextStopsRetrying(t *testing.T) {
	queries := NewQueries(NewStore(), nil, 5, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	_, err := queries.Fetch(ctx, "faqs", func(c context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		cancel()
		return nil, errors.New("transient")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 1, calls)
}

func TestFetchInvalidatedMidFlightRefetchesFreshResult(t *testing.T) {
	store := NewStore()
	queries := NewQueries(store, nil, 0, 0)

	var calls int32
	entered := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
			return "raced", nil
		}
		return "recovered", nil
	}

	go queries.Refresh(context.Background(), "faqs", fetch)

	// A mutation invalidates the key while the first request is in flight.
	<-entered
	store.Invalidate("faqs")
	close(release)

	// The immediate re-fetch must issue a second request and land its
	// result, not join the completing flight and keep the raced value.
	assert.Eventually(t, func() bool {
		value, _, _ := store.Get("faqs")
		return value == "recovered"
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, store.IsStale("faqs", time.Hour, time.Now()))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestFetchDefaultMaxAgeApplies(t *testing.T) {
	store := NewStore()
	queries := NewQueries(store, StalePolicy{"tickets": time.Minute}, 0, 0)

	store.Write("unknown-entity", "cached", store.NextSeq(), time.Now().Add(-time.Minute))

	var calls int32
	value, err := queries.Fetch(context.Background(), "unknown-entity", countingFetch(&calls, "fresh", nil))
	require.NoError(t, err)
	assert.Equal(t, "cached", value, "still within the default staleness window")
	assert.EqualValues(t, 0, calls)
}
