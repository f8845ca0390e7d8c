package client

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// FilterAll is the default value of every filter ("no filtering")
const FilterAll = "all"

// FilterSnapshot is an atomic copy of the committed filter state, used to
// build request keys and to filter lists locally.
type FilterSnapshot struct {
	Search  string
	Filters map[string]string
	SortKey string
	Page    int
}

// Filters holds ephemeral view parameters: debounced search text, a map of
// filter keys to values, sort key and page. Any filter change resets the
// page to 1. Search input is debounced with the timer-cancelling pattern so
// a burst of keystrokes produces a single committed change.
type Filters struct {
	mu sync.Mutex

	search  string
	filters map[string]string
	sortKey string
	page    int

	defaults map[string]string
	debounce time.Duration
	pending  *time.Timer

	// onChange fires after every committed change (debounced search included)
	onChange func(FilterSnapshot)
}

func NewFilters(filterKeys []string, sortKey string, debounce time.Duration) *Filters {
	defaults := make(map[string]string, len(filterKeys))
	for _, key := range filterKeys {
		defaults[key] = FilterAll
	}

	f := &Filters{
		filters:  make(map[string]string, len(defaults)),
		sortKey:  sortKey,
		page:     1,
		defaults: defaults,
		debounce: debounce,
	}
	for key, value := range defaults {
		f.filters[key] = value
	}
	return f
}

// OnChange registers the callback invoked after each committed change
func (f *Filters) OnChange(fn func(FilterSnapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

// SetSearch schedules a debounced search commit. Each keystroke cancels the
// previously pending commit and starts the interval over.
func (f *Filters) SetSearch(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending != nil {
		f.pending.Stop()
	}
	f.pending = time.AfterFunc(f.debounce, func() {
		f.mu.Lock()
		f.search = strings.TrimSpace(text)
		f.page = 1
		f.pending = nil
		snap := f.snapshotLocked()
		fn := f.onChange
		f.mu.Unlock()

		if fn != nil {
			fn(snap)
		}
	})
}

// FlushSearch commits any pending search immediately (submit on Enter)
func (f *Filters) FlushSearch(text string) {
	f.mu.Lock()
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	f.search = strings.TrimSpace(text)
	f.page = 1
	snap := f.snapshotLocked()
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// SetFilter updates one filter and resets the page
func (f *Filters) SetFilter(key, value string) {
	f.mu.Lock()
	if _, ok := f.defaults[key]; !ok {
		f.mu.Unlock()
		return
	}
	f.filters[key] = value
	f.page = 1
	snap := f.snapshotLocked()
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// SetSort updates the sort key and resets the page
func (f *Filters) SetSort(sortKey string) {
	f.mu.Lock()
	f.sortKey = sortKey
	f.page = 1
	snap := f.snapshotLocked()
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// SetPage moves to a page without touching filters
func (f *Filters) SetPage(page int) {
	f.mu.Lock()
	if page < 1 {
		page = 1
	}
	f.page = page
	snap := f.snapshotLocked()
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// Clear resets every field to its default in one atomic update. Clearing an
// already-clear state is a no-op that still yields the same default snapshot.
func (f *Filters) Clear() {
	f.mu.Lock()
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	f.search = ""
	f.page = 1
	for key, value := range f.defaults {
		f.filters[key] = value
	}
	snap := f.snapshotLocked()
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// HasActiveFilters reports whether any filter or the search text differs
// from its default.
func (f *Filters) HasActiveFilters() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.search != "" {
		return true
	}
	for key, value := range f.filters {
		if value != f.defaults[key] {
			return true
		}
	}
	return false
}

// Snapshot returns an atomic copy of the committed state
func (f *Filters) Snapshot() FilterSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Filters) snapshotLocked() FilterSnapshot {
	filters := make(map[string]string, len(f.filters))
	for key, value := range f.filters {
		filters[key] = value
	}
	return FilterSnapshot{
		Search:  f.search,
		Filters: filters,
		SortKey: f.sortKey,
		Page:    f.page,
	}
}

// QueryKey serializes a snapshot into a stable request key for the cache:
// same state, same key, regardless of map iteration order.
func (s FilterSnapshot) QueryKey(entity string) string {
	keys := make([]string, 0, len(s.Filters))
	for key := range s.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(entity)
	b.WriteString("?search=")
	b.WriteString(s.Search)
	for _, key := range keys {
		fmt.Fprintf(&b, "&%s=%s", key, s.Filters[key])
	}
	fmt.Fprintf(&b, "&sort=%s&page=%d", s.SortKey, s.Page)
	return b.String()
}
