package cache

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/buildenv/javainst/internal/files"
)

// Option defines a functional option for configuring Store.
type Option func(*Options) error

// Options contains optional configuration for the store.
type Options struct {
	// dir is the directory where entries are stored.
	dir string

	// enabled determines if caching is enabled.
	enabled bool

	// refreshCache forces entries to be rewritten when true.
	refreshCache bool
}

// DefaultDir returns the default directory for cached probe results.
// It is the user-specific cache directory with "probes" appended.
func DefaultDir() (string, error) {
	cacheDir, err := files.UserSpecificCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "probes"), nil
}

func NewOptions(opts ...Option) (Options, error) {
	// Default options.
	o := Options{
		enabled:      true,
		refreshCache: false,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	// Only resolve the default directory when one is needed.
	if o.dir == "" && o.enabled {
		dir, err := DefaultDir()
		if err != nil {
			return Options{}, err
		}
		o.dir = dir
	}

	return o, nil
}

// WithDirectory sets the cache directory.
func WithDirectory(dir string) Option {
	return func(o *Options) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return fmt.Errorf("cache directory cannot be empty")
		}
		o.dir = dir
		return nil
	}
}

// WithCaching configures whether caching is enabled.
func WithCaching(enabled bool) Option {
	return func(o *Options) error {
		o.enabled = enabled
		return nil
	}
}

// WithRefreshCache forces existing entries to be ignored and rewritten.
func WithRefreshCache(refreshCache bool) Option {
	return func(o *Options) error {
		o.refreshCache = refreshCache
		return nil
	}
}
