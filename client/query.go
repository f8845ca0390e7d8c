package client

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc performs the network read for one request key
type FetchFunc func(ctx context.Context) (interface{}, error)

// StalePolicy maps a request-key prefix (entity class) to its staleness
// threshold. Fast-moving lists refresh sooner than slow-moving reference
// data; values come from config and are policy, not contract.
type StalePolicy map[string]time.Duration

// DefaultMaxAge is used for keys with no matching policy prefix
const DefaultMaxAge = 5 * time.Minute

// Queries is the read side of the sync layer: cached reads with background
// refresh once stale, deduplication of identical in-flight requests, and a
// small bounded retry for transient failures. It never silently discards
// good cached data on error.
type Queries struct {
	store   *Store
	policy  StalePolicy
	retries int
	backoff time.Duration

	group singleflight.Group
}

func NewQueries(store *Store, policy StalePolicy, retries int, backoff time.Duration) *Queries {
	return &Queries{store: store, policy: policy, retries: retries, backoff: backoff}
}

func (q *Queries) maxAge(key string) time.Duration {
	for prefix, age := range q.policy {
		if strings.HasPrefix(key, prefix) {
			return age
		}
	}
	return DefaultMaxAge
}

// Fetch resolves a request key. A fresh cache hit returns immediately. A
// stale hit returns the cached value now and refreshes in the background.
// A miss fetches inline. Concurrent calls for the same key share a single
// network request. On failure with cached data present, the stale value is
// returned together with the error so the caller can flag it without
// blanking the view.
func (q *Queries) Fetch(ctx context.Context, key string, fetch FetchFunc) (interface{}, error) {
	maxAge := q.maxAge(key)
	now := time.Now()

	value, _, cached := q.store.Get(key)
	if cached && !q.store.IsStale(key, maxAge, now) {
		return value, nil
	}

	if cached {
		// Serve stale, revalidate in the background. The singleflight group
		// keeps concurrent reads of the same key down to one request.
		go q.refresh(context.WithoutCancel(ctx), key, fetch)
		return value, nil
	}

	fresh, err := q.refresh(ctx, key, fetch)
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

// Refresh forces a network read for a key regardless of staleness
func (q *Queries) Refresh(ctx context.Context, key string, fetch FetchFunc) (interface{}, error) {
	return q.refresh(ctx, key, fetch)
}

func (q *Queries) refresh(ctx context.Context, key string, fetch FetchFunc) (interface{}, error) {
	result, err, _ := q.group.Do(key, func() (interface{}, error) {
		seq := q.store.NextSeq()

		value, err := q.fetchWithRetry(ctx, fetch)
		if err != nil {
			return nil, err
		}

		_, refetch := q.store.Write(key, value, seq, time.Now())
		if refetch {
			// Invalidated while in flight: the result still resolved, but a
			// newer truth is expected. Drop this flight's registration first
			// so the immediate re-fetch starts a fresh request instead of
			// joining the one that is completing.
			q.group.Forget(key)
			go q.refresh(context.WithoutCancel(ctx), key, fetch)
		}
		return value, nil
	})
	if err != nil {
		// Keep serving the last good value alongside the error.
		if value, _, ok := q.store.Get(key); ok {
			return value, err
		}
		return nil, err
	}
	return result, nil
}

// fetchWithRetry retries transient read failures a bounded number of times
// with linear backoff. Context cancellation stops the attempts immediately.
func (q *Queries) fetchWithRetry(ctx context.Context, fetch FetchFunc) (interface{}, error) {
	var lastErr error
	for attempt := 0; attempt <= q.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * q.backoff):
			}
		}

		value, err := fetch(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}
