package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"histfetch/internal/history"
)

const entryExtension = ".json"

// entry is the on-disk envelope around a cached dataset.
type entry struct {
	Key       string           `json:"key"`
	Dataset   *history.Dataset `json:"dataset"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Store is a file-backed dataset cache rooted at a single directory. The
// root is created lazily on first write. Reads degrade to a miss on any
// I/O or parse problem; writes go through a temp file and rename so a
// crash never leaves a half-written entry behind. Concurrent processes
// racing on the same key resolve to last-writer-wins.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir. The directory does not need to
// exist yet. A nil logger falls back to slog.Default.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{root: dir, logger: logger}
}

// Get reads the cached dataset for key. The second return is false when no
// entry exists, when the file cannot be read, or when it fails to parse.
// A corrupted entry is removed so the next fetch rewrites it cleanly.
func (s *Store) Get(key string) (*history.Dataset, bool) {
	path := s.path(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cache read failed, treating as miss", "path", path, "error", err)
		}
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || e.Dataset == nil {
		s.logger.Warn("corrupted cache entry, removing", "path", path, "error", err)
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("failed to remove corrupted cache entry", "path", path, "error", rmErr)
		}
		return nil, false
	}

	s.logger.Debug("cache hit", "key", key, "bars", len(e.Dataset.Bars), "fetched_at", e.FetchedAt)
	return e.Dataset, true
}

// Put replaces any existing entry for key with ds. The dataset is written
// to a temp file in the cache root and renamed into place, so readers
// never observe a partial entry. Empty datasets are not cached.
func (s *Store) Put(key string, ds *history.Dataset) error {
	if ds == nil || ds.Empty() {
		return fmt.Errorf("refusing to cache empty dataset for key %s", key)
	}

	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", s.root, err)
	}

	raw, err := json.Marshal(entry{Key: key, Dataset: ds, FetchedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry for key %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.root, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache entry: %w", err)
	}

	s.logger.Debug("cache entry written", "key", key, "bars", len(ds.Bars))
	return nil
}

// Invalidate removes the entry for key if one exists. Removing a missing
// entry is a no-op.
func (s *Store) Invalidate(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache entry for key %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.root, key+entryExtension)
}
