package config

import (
	"fmt"
	"strings"
)

// ValidationPredicate evaluates a loaded Config and returns an error if invalid.
type ValidationPredicate func(*Config) error

// validatingLoader wraps a Loader to run additional validation predicates at load time.
type validatingLoader struct {
	Loader
	predicates []ValidationPredicate
}

// NewValidatingLoader creates a loader that runs validation predicates after Load().
func NewValidatingLoader(inner Loader, predicates ...ValidationPredicate) *validatingLoader {
	return &validatingLoader{
		Loader:     inner,
		predicates: predicates,
	}
}

// Load delegates to inner loader, then runs validation predicates.
func (l *validatingLoader) Load(path string) (*Config, error) {
	cfg, err := l.Loader.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("invalid config structure")
	}

	for _, predicate := range l.predicates {
		if err := predicate(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// RequireCompilationHints rejects configs that name no compilation hint properties.
func RequireCompilationHints(cfg *Config) error {
	if len(cfg.Hints.Compilation) == 0 {
		return NewErrInvalidValue("hints.compilation", "")
	}
	return nil
}

// RequireRemoteURL rejects configs with an enabled remote build cache that has no URL.
func RequireRemoteURL(cfg *Config) error {
	if cfg.BuildCache.RemoteEnabled() && strings.TrimSpace(cfg.BuildCache.Remote.URL) == "" {
		return NewErrInvalidValue("build_cache.remote.url", "")
	}
	return nil
}
