package probe

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/buildenv/javainst/internal/cache"
)

// DefaultTimeout bounds how long a single probe of a Java launcher may run.
const DefaultTimeout = 30 * time.Second

// CommandRunner runs a command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Option defines a functional option for configuring probes and environments.
type Option func(*Options) error

// Options contains optional configuration for probing.
type Options struct {
	timeout time.Duration
	runner  CommandRunner
	store   *cache.Store
	getenv  func(string) string
	lookup  func(string) (string, error)
}

// NewOptions applies the given options over the defaults.
func NewOptions(opt ...Option) (Options, error) {
	o := Options{
		timeout: DefaultTimeout,
		runner:  runCommand,
		getenv:  osGetenv,
		lookup:  exec.LookPath,
	}

	for _, fn := range opt {
		if fn == nil {
			continue
		}
		if err := fn(&o); err != nil {
			return Options{}, err
		}
	}

	return o, nil
}

// WithTimeout bounds each execution of a Java launcher.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("probe timeout must be positive, got %v", d)
		}
		o.timeout = d
		return nil
	}
}

// WithCommandRunner replaces how Java launchers are executed.
func WithCommandRunner(r CommandRunner) Option {
	return func(o *Options) error {
		if r == nil {
			return fmt.Errorf("command runner cannot be nil")
		}
		o.runner = r
		return nil
	}
}

// WithStore memoizes probe output in the given store.
func WithStore(s *cache.Store) Option {
	return func(o *Options) error {
		o.store = s
		return nil
	}
}

// WithGetenv replaces how environment variables are read when locating the ambient installation.
func WithGetenv(fn func(string) string) Option {
	return func(o *Options) error {
		if fn == nil {
			return fmt.Errorf("getenv cannot be nil")
		}
		o.getenv = fn
		return nil
	}
}

// WithLookPath replaces how the 'java' launcher is found on PATH.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(o *Options) error {
		if fn == nil {
			return fmt.Errorf("look path cannot be nil")
		}
		o.lookup = fn
		return nil
	}
}
