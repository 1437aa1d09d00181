package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/buildenv/javainst/internal/perms"
)

const skeleton = `# Build-scoped properties. Values here take precedence over environment variables.
[properties]
# java7Home = "/usr/lib/jvm/java-7-oracle"
# testJavaHome = "/usr/lib/jvm/java-11-openjdk"

[hints]
# Properties pointing at installations used to compile for older Java versions.
# The first one is checked by the build cache policy.
compilation = ["java7Home"]
# Property pointing at the installation tests run with (defaults to the current one).
test = "testJavaHome"

[build_cache.remote]
url = ""
enabled = false

[policy]
compilation_display_name = "Oracle JDK 7"
runtime_display_name = "Oracle JDK 8"

[probe]
timeout = "30s"
`

// Init creates the base skeleton configuration file.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(skeleton), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load reads the config file at path. A missing file yields Default().
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.configFilePath = path
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("%w: config file does not match schema (%s): %w", ErrConfigLoadFailed, path, err)
	}

	cfg := Default()
	cfg.Hints = HintsSection{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if _, ok := raw["hints"]; !ok {
		cfg.Hints = Default().Hints
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate existing config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	cfg.configFilePath = path

	return cfg, nil
}

// FilePath returns the path the config was loaded from.
func (c *Config) FilePath() string {
	return c.configFilePath
}

// ProbeTimeout returns the configured probe timeout, or zero when unset.
func (c *Config) ProbeTimeout() time.Duration {
	if c.Probe.Timeout == nil {
		return 0
	}
	return time.Duration(*c.Probe.Timeout)
}

// CompilationProperties returns a copy of the compilation hint property names.
func (c *Config) CompilationProperties() []string {
	return slices.Clone(c.Hints.Compilation)
}

// validate orchestrates validation of configuration structure.
func (c *Config) validate() error {
	seen := map[string]struct{}{}
	for _, name := range c.Hints.Compilation {
		name = strings.TrimSpace(name)
		if name == "" {
			return NewErrInvalidValue("hints.compilation", name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate compilation hint property '%s'", name)
		}
		seen[name] = struct{}{}
	}

	if _, ok := seen[strings.TrimSpace(c.Hints.Test)]; ok {
		return fmt.Errorf("property '%s' cannot be both a compilation and a test hint", c.Hints.Test)
	}

	if c.Probe.Timeout != nil && *c.Probe.Timeout <= 0 {
		return NewErrInvalidValue("probe.timeout", time.Duration(*c.Probe.Timeout).String())
	}

	return nil
}
