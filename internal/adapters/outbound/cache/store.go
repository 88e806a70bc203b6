package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abdidvp/sclkraft/internal/domain"
)

// Store is a file-based implementation of domain.ReportCache.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads a project's report cache from disk. Returns (nil, nil) if no
// cache exists.
func (s *Store) Load(projectPath string) (*domain.ReportCacheEntry, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var entry domain.ReportCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Save writes the report cache to disk, creating directories as needed.
func (s *Store) Save(projectPath string, entry *domain.ReportCacheEntry) error {
	if err := os.MkdirAll(cacheDir(projectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath(projectPath), data, 0644)
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".sclkraft", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "reports.json")
}
