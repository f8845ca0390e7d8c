package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const localStateVersion = 1

const maxRecentSearches = 10

type localStateFile struct {
	Version        int      `json:"version"`
	Bookmarks      []uint   `json:"bookmarks"`
	RecentSearches []string `json:"recent_searches"`
}

// LocalState persists per-user bookmarks and recent searches, namespaced by
// user id, as small versioned JSON files. A file with an unknown version is
// discarded and rewritten; nothing in it is worth a migration.
type LocalState struct {
	mu   sync.Mutex
	path string

	bookmarks      []uint
	recentSearches []string
}

// NewLocalState opens (or creates) the state file for one user
func NewLocalState(dir string, userID uint) (*LocalState, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}

	s := &LocalState{path: filepath.Join(dir, fmt.Sprintf("user_%d.json", userID))}
	s.load()
	return s, nil
}

func (s *LocalState) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return // nothing persisted yet
	}

	var file localStateFile
	if json.Unmarshal(data, &file) != nil || file.Version != localStateVersion {
		return // unreadable or unknown version: start fresh
	}

	s.bookmarks = file.Bookmarks
	s.recentSearches = file.RecentSearches
}

func (s *LocalState) save() error {
	file := localStateFile{
		Version:        localStateVersion,
		Bookmarks:      s.bookmarks,
		RecentSearches: s.recentSearches,
	}
	data, err := json.Marshal(file)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Bookmarks returns the bookmarked FAQ ids in insertion order
func (s *LocalState) Bookmarks() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// IsBookmarked reports whether a FAQ id is bookmarked
func (s *LocalState) IsBookmarked(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookmarks {
		if b == id {
			return true
		}
	}
	return false
}

// ToggleBookmark adds or removes a bookmark and persists the change
func (s *LocalState) ToggleBookmark(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookmarks {
		if b == id {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			return s.save()
		}
	}
	s.bookmarks = append(s.bookmarks, id)
	return s.save()
}

// RecentSearches returns the recent search terms, newest first
func (s *LocalState) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.recentSearches))
	copy(out, s.recentSearches)
	return out
}

// AddRecentSearch records a search term, de-duplicated and capped
func (s *LocalState) AddRecentSearch(term string) error {
	if term == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]string, 0, len(s.recentSearches)+1)
	filtered = append(filtered, term)
	for _, existing := range s.recentSearches {
		if existing != term {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) > maxRecentSearches {
		filtered = filtered[:maxRecentSearches]
	}
	s.recentSearches = filtered
	return s.save()
}
