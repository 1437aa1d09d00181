package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/buildenv/javainst/internal/cache"
	"github.com/buildenv/javainst/internal/config"
	"github.com/buildenv/javainst/internal/flags"
	"github.com/buildenv/javainst/internal/perms"
	"github.com/buildenv/javainst/internal/probe"
	"github.com/buildenv/javainst/internal/properties"
	"github.com/buildenv/javainst/internal/registry"
)

var _ ProbeBuilder = (*BaseCmd)(nil)

// ProbeBuilder creates the prober and ambient environment used to inspect installations.
type ProbeBuilder interface {
	// Build resolves the ambient environment and creates a prober for it.
	Build(cfg *config.Config) (probe.Prober, probe.Environment, error)

	// Checker creates a prober for arbitrary homes without resolving the ambient environment.
	Checker(cfg *config.Config) (probe.Checker, error)
}

type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, logging disabled\n", logPath, err)
		} else {
			output = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "javainst",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// Build creates the probe cache, the ambient environment and an exec based prober,
// honoring the probe cache flags and the configured timeout.
func (c *BaseCmd) Build(cfg *config.Config) (probe.Prober, probe.Environment, error) {
	logger := c.Logger()

	probeOpts, err := c.probeOptions(cfg)
	if err != nil {
		return nil, nil, err
	}

	env, err := probe.NewOSEnvironment(logger, probeOpts...)
	if err != nil {
		return nil, nil, err
	}

	prober, err := probe.NewExecProbe(logger, env, probeOpts...)
	if err != nil {
		return nil, nil, err
	}

	return prober, env, nil
}

// Checker creates an exec based prober which never looks at the ambient installation.
func (c *BaseCmd) Checker(cfg *config.Config) (probe.Checker, error) {
	probeOpts, err := c.probeOptions(cfg)
	if err != nil {
		return nil, err
	}

	return probe.NewExecProbe(c.Logger(), probe.UnknownEnvironment(), probeOpts...)
}

// probeOptions creates the probe cache store and applies the configured timeout.
func (c *BaseCmd) probeOptions(cfg *config.Config) ([]probe.Option, error) {
	cacheOpts := []cache.Option{
		cache.WithCaching(!flags.NoProbeCache),
		cache.WithRefreshCache(flags.RefreshProbeCache),
	}
	if dir := strings.TrimSpace(flags.ProbeCacheDir); dir != "" {
		cacheOpts = append(cacheOpts, cache.WithDirectory(dir))
	}

	store, err := cache.NewStore(c.Logger(), cacheOpts...)
	if err != nil {
		return nil, fmt.Errorf("error creating probe cache: %w", err)
	}

	probeOpts := []probe.Option{probe.WithStore(store)}
	if timeout := cfg.ProbeTimeout(); timeout > 0 {
		probeOpts = append(probeOpts, probe.WithTimeout(timeout))
	}

	return probeOpts, nil
}

// Resolver returns the property resolver for cfg.
// Command line properties win over the config file, which wins over the environment.
func (c *BaseCmd) Resolver(cfg *config.Config) (*properties.Resolver, error) {
	cli, err := properties.ParseAssignments(flags.Properties)
	if err != nil {
		return nil, err
	}

	return properties.NewResolver(
		properties.NewMapSource("command line", cli),
		properties.NewMapSource(configSourceName(cfg), cfg.Properties),
		properties.NewEnvSource(),
	), nil
}

// Registry resolves the configured hints and probes every hinted installation.
func (c *BaseCmd) Registry(cfg *config.Config, prober probe.Prober, env probe.Environment) (*registry.Registry, error) {
	resolver, err := c.Resolver(cfg)
	if err != nil {
		return nil, err
	}

	hints := registry.ResolveHints(resolver, cfg.CompilationProperties(), cfg.Hints.Test)

	return registry.New(c.Logger(), prober, env, hints)
}

func configSourceName(cfg *config.Config) string {
	if path := cfg.FilePath(); path != "" {
		return path
	}
	return "config file"
}
