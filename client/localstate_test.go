package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStateBookmarkRoundTrip(t *testing.T) {
	dir := t.TempDir()

	state, err := NewLocalState(dir, 42)
	require.NoError(t, err)

	require.NoError(t, state.ToggleBookmark(7))
	require.NoError(t, state.ToggleBookmark(3))
	assert.True(t, state.IsBookmarked(7))

	// A new handle reads back the persisted file.
	reloaded, err := NewLocalState(dir, 42)
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 3}, reloaded.Bookmarks())

	require.NoError(t, reloaded.ToggleBookmark(7))
	assert.False(t, reloaded.IsBookmarked(7))
	assert.Equal(t, []uint{3}, reloaded.Bookmarks())
}

func TestLocalStateNamespacedPerUser(t *testing.T) {
	dir := t.TempDir()

	alice, err := NewLocalState(dir, 1)
	require.NoError(t, err)
	bob, err := NewLocalState(dir, 2)
	require.NoError(t, err)

	require.NoError(t, alice.ToggleBookmark(5))
	assert.True(t, alice.IsBookmarked(5))
	assert.False(t, bob.IsBookmarked(5))
}

func TestLocalStateUnknownVersionDiscarded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user_9.json")
	payload := `{"version":99,"bookmarks":[1,2,3],"recent_searches":["old"]}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	state, err := NewLocalState(dir, 9)
	require.NoError(t, err)
	assert.Empty(t, state.Bookmarks())
	assert.Empty(t, state.RecentSearches())
}

func TestLocalStateCorruptFileDiscarded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user_9.json"), []byte("{not json"), 0o644))

	state, err := NewLocalState(dir, 9)
	require.NoError(t, err)
	assert.Empty(t, state.Bookmarks())
}

func TestLocalStateRecentSearches(t *testing.T) {
	dir := t.TempDir()
	state, err := NewLocalState(dir, 1)
	require.NoError(t, err)

	require.NoError(t, state.AddRecentSearch("housing"))
	require.NoError(t, state.AddRecentSearch("tuition"))
	assert.Equal(t, []string{"tuition", "housing"}, state.RecentSearches(), "newest first")

	// Repeating a term moves it to the front instead of duplicating.
	require.NoError(t, state.AddRecentSearch("housing"))
	assert.Equal(t, []string{"housing", "tuition"}, state.RecentSearches())

	// Empty terms are ignored.
	require.NoError(t, state.AddRecentSearch(""))
	assert.Len(t, state.RecentSearches(), 2)
}

func TestLocalStateRecentSearchesCapped(t *testing.T) {
	dir := t.TempDir()
	state, err := NewLocalState(dir, 1)
	require.NoError(t, err)

	terms := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for _, term := range terms {
		require.NoError(t, state.AddRecentSearch(term))
	}

	recent := state.RecentSearches()
	assert.Len(t, recent, maxRecentSearches)
	assert.Equal(t, "l", recent[0])
	assert.NotContains(t, recent, "a")
	assert.NotContains(t, recent, "b")
}
