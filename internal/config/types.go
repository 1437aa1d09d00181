package config

import (
	"strings"
	"time"
)

var _ Provider = (*DefaultLoader)(nil)

type Loader interface {
	Load(path string) (*Config, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type DefaultLoader struct{}

// Default property names used when the config file does not name any.
const (
	DefaultCompilationProperty = "java7Home"
	DefaultTestProperty        = "testJavaHome"
)

// Config represents the .javainst.toml file structure.
type Config struct {
	// Properties are build-scoped properties. They take precedence over the environment.
	// e.g. java7Home = '/usr/lib/jvm/java-7-oracle'
	Properties map[string]string `json:"properties,omitempty" toml:"properties,omitempty" yaml:"properties,omitempty"`

	// Hints names the properties that point at installations.
	Hints HintsSection `json:"hints" toml:"hints" yaml:"hints"`

	// BuildCache describes the build cache the policy is checked against.
	BuildCache BuildCacheSection `json:"build_cache" toml:"build_cache" yaml:"build_cache"`

	// Policy holds the installations the remote build cache expects.
	Policy PolicySection `json:"policy" toml:"policy" yaml:"policy"`

	// Probe configures how installations are inspected.
	Probe ProbeSection `json:"probe" toml:"probe" yaml:"probe"`

	configFilePath string `toml:"-"`
}

// HintsSection names the properties holding installation homes.
type HintsSection struct {
	// Compilation lists properties pointing at installations used for compiling older Java versions.
	// The first one is the primary hint checked by the cache policy.
	Compilation []string `json:"compilation" toml:"compilation" yaml:"compilation"`

	// Test is the property pointing at the installation tests run with.
	Test string `json:"test" toml:"test" yaml:"test"`
}

// BuildCacheSection describes the build cache.
type BuildCacheSection struct {
	Remote *RemoteCacheSection `json:"remote,omitempty" toml:"remote,omitempty" yaml:"remote,omitempty"`
}

// RemoteCacheSection describes the remote build cache.
type RemoteCacheSection struct {
	URL     string `json:"url" toml:"url" yaml:"url"`
	Enabled bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
}

// RemoteConfigured reports whether a remote build cache is configured.
func (b BuildCacheSection) RemoteConfigured() bool {
	return b.Remote != nil
}

// RemoteEnabled reports whether the configured remote build cache is enabled.
func (b BuildCacheSection) RemoteEnabled() bool {
	return b.Remote != nil && b.Remote.Enabled
}

// PolicySection holds the expected display names. Empty values disable the matching check.
type PolicySection struct {
	// CompilationDisplayName is what the primary compilation installation must be, e.g. 'Oracle JDK 7'.
	CompilationDisplayName string `json:"compilation_display_name,omitempty" toml:"compilation_display_name,omitempty" yaml:"compilation_display_name,omitempty"`

	// RuntimeDisplayName is what the current installation must be, e.g. 'Oracle JDK 8'.
	RuntimeDisplayName string `json:"runtime_display_name,omitempty" toml:"runtime_display_name,omitempty" yaml:"runtime_display_name,omitempty"`
}

// ProbeSection configures probing.
type ProbeSection struct {
	// Timeout bounds each execution of a Java launcher.
	Timeout *Duration `json:"timeout,omitempty" toml:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Duration is a time.Duration read from and written as a string such as '30s'.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Properties: map[string]string{},
		Hints: HintsSection{
			Compilation: []string{DefaultCompilationProperty},
			Test:        DefaultTestProperty,
		},
	}
}
