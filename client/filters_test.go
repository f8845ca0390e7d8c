package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeLog struct {
	mu    sync.Mutex
	snaps []FilterSnapshot
}

func (l *changeLog) record(snap FilterSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snaps = append(l.snaps, snap)
}

func (l *changeLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.snaps)
}

func (l *changeLog) last() FilterSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snaps[len(l.snaps)-1]
}

func newTestFilters(debounce time.Duration) (*Filters, *changeLog) {
	f := NewFilters([]string{"category", "status"}, "newest", debounce)
	log := &changeLog{}
	f.OnChange(log.record)
	return f, log
}

func TestFiltersDefaults(t *testing.T) {
	f, _ := newTestFilters(time.Millisecond)
	snap := f.Snapshot()

	assert.Equal(t, "", snap.Search)
	assert.Equal(t, FilterAll, snap.Filters["category"])
	assert.Equal(t, FilterAll, snap.Filters["status"])
	assert.Equal(t, "newest", snap.SortKey)
	assert.Equal(t, 1, snap.Page)
	assert.False(t, f.HasActiveFilters())
}

func TestFiltersDebounceCommitsOnce(t *testing.T) {
	f, log := newTestFilters(40 * time.Millisecond)

	// A burst of keystrokes inside the window commits only the last text.
	f.SetSearch("s")
	f.SetSearch("st")
	f.SetSearch("str")
	f.SetSearch("stress")

	assert.Equal(t, "", f.Snapshot().Search, "nothing committed before the window elapses")

	require.Eventually(t, func() bool { return log.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "stress", log.last().Search)

	// No trailing extra commits.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, log.count())
}

func TestFiltersSearchResetsPage(t *testing.T) {
	f, log := newTestFilters(time.Millisecond)
	f.SetPage(4)
	f.FlushSearch("housing")

	snap := log.last()
	assert.Equal(t, "housing", snap.Search)
	assert.Equal(t, 1, snap.Page)
}

func TestFiltersSetFilterResetsPage(t *testing.T) {
	f, log := newTestFilters(time.Millisecond)
	f.SetPage(3)
	f.SetFilter("status", "published")

	snap := log.last()
	assert.Equal(t, "published", snap.Filters["status"])
	assert.Equal(t, 1, snap.Page)
	assert.True(t, f.HasActiveFilters())
}

func TestFiltersUnknownKeyIgnored(t *testing.T) {
	f, log := newTestFilters(time.Millisecond)
	f.SetFilter("bogus", "value")

	assert.Equal(t, 0, log.count())
	_, ok := f.Snapshot().Filters["bogus"]
	assert.False(t, ok)
}

func TestFiltersClearResetsEverythingAtomically(t *testing.T) {
	f, log := newTestFilters(time.Millisecond)
	f.FlushSearch("housing")
	f.SetFilter("category", "3")
	f.SetFilter("status", "published")
	f.SetPage(5)
	require.True(t, f.HasActiveFilters())

	f.Clear()
	snap := log.last()
	assert.Equal(t, "", snap.Search)
	assert.Equal(t, FilterAll, snap.Filters["category"])
	assert.Equal(t, FilterAll, snap.Filters["status"])
	assert.Equal(t, 1, snap.Page)
	assert.False(t, f.HasActiveFilters())
}

func TestFiltersClearIsIdempotent(t *testing.T) {
	f, _ := newTestFilters(time.Millisecond)
	f.FlushSearch("housing")
	f.SetFilter("status", "draft")

	f.Clear()
	first := f.Snapshot()
	f.Clear()
	second := f.Snapshot()

	assert.Equal(t, first, second, "clearing an already-clear state yields the same snapshot")
}

func TestFiltersClearCancelsPendingSearch(t *testing.T) {
	f, log := newTestFilters(40 * time.Millisecond)
	f.SetSearch("about to be discarded")
	f.Clear()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, "", f.Snapshot().Search, "a pending debounced search must not land after Clear")
	// Only the Clear commit itself fired.
	assert.Equal(t, 1, log.count())
}

func TestFiltersQueryKeyIsStable(t *testing.T) {
	f, _ := newTestFilters(time.Millisecond)
	f.SetFilter("status", "published")
	f.SetFilter("category", "2")

	snap := f.Snapshot()
	key := snap.QueryKey("faqs")
	assert.Equal(t, "faqs?search=&category=2&status=published&sort=newest&page=1", key)

	// Same state always serializes identically.
	for i := 0; i < 5; i++ {
		assert.Equal(t, key, f.Snapshot().QueryKey("faqs"))
	}
}

func TestFiltersQueryKeyDistinguishesPages(t *testing.T) {
	f, _ := newTestFilters(time.Millisecond)
	key1 := f.Snapshot().QueryKey("tickets")
	f.SetPage(2)
	key2 := f.Snapshot().QueryKey("tickets")
	assert.NotEqual(t, key1, key2)
}
