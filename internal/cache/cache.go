package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/buildenv/javainst/internal/files"
)

// WriteFunc produces the content of an entry by writing to the given (temporary) path.
type WriteFunc func(path string) error

// Store is a content-addressed file store: each entry is a file named after its key inside a base directory.
// Entries are written through a temporary file and renamed into place, so readers never see partial entries.
// NewStore should be used to create instances of Store.
type Store struct {
	// dir is the directory where entries are stored.
	dir string

	// enabled determines if caching is enabled.
	enabled bool

	// refresh ignores and rewrites existing entries when true.
	refresh bool

	// logger is used for logging cache operations.
	logger hclog.Logger
}

// NewStore creates a new file store.
func NewStore(logger hclog.Logger, opts ...Option) (*Store, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	// Only create the directory if caching is enabled.
	if options.enabled {
		if err := files.EnsureAtLeastRegularDir(options.dir); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return &Store{
		dir:     options.dir,
		enabled: options.enabled,
		refresh: options.refreshCache,
		logger:  logger.Named("cache"),
	}, nil
}

// Key hashes the given parts into a key suitable for the store.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Enabled reports whether the store reads and writes entries.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Get returns the path of the entry for key, or false if there is none.
// A disabled or refreshing store never returns entries.
func (s *Store) Get(key string) (string, bool) {
	if !s.enabled {
		return "", false
	}

	path, err := s.path(key)
	if err != nil {
		s.logger.Warn("Invalid cache key", "key", key, "error", err)
		return "", false
	}

	if s.refresh {
		s.logger.Debug("Cache refresh requested, ignoring entry", "key", key)
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		s.logger.Debug("Cache entry not found", "key", key)
		return "", false
	}

	s.logger.Debug("Using cached entry", "key", key, "path", path)
	return path, true
}

// Put stores an entry for key using write to produce it, and returns the entry path.
// An existing entry is kept as-is unless the store is refreshing.
// When write fails nothing is left behind for key.
func (s *Store) Put(key string, write WriteFunc) (string, error) {
	if !s.enabled {
		return "", fmt.Errorf("cache is disabled")
	}

	dest, err := s.path(key)
	if err != nil {
		return "", err
	}

	if !s.refresh {
		if _, err := os.Stat(dest); err == nil {
			s.logger.Debug("Cache entry already present", "key", key, "path", dest)
			return dest, nil
		}
	}

	tmpFile, err := os.CreateTemp(s.dir, "entry-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	defer func() {
		_ = os.Remove(tmpPath) // Clean up on any error.
	}()

	if err := write(tmpPath); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("failed to write cache entry '%s': %w", key, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("cannot rename %s to %s: %w", tmpPath, dest, err)
	}

	s.logger.Debug("Stored cache entry", "key", key, "path", dest)
	return dest, nil
}

// path returns the location of the entry for key, rejecting keys that are not lowercase hex.
func (s *Store) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("cache key cannot be empty")
	}
	for _, r := range key {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", fmt.Errorf("cache key '%s' must be lowercase hex", key)
		}
	}

	return filepath.Join(s.dir, key), nil
}
