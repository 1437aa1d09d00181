package probe

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/buildenv/javainst/internal/files"
)

// EnvVarJavaHome is the environment variable naming the ambient Java installation.
const EnvVarJavaHome = "JAVA_HOME"

// OSEnvironment is the ambient Java installation of the host, resolved once.
// NewOSEnvironment should be used to create instances of OSEnvironment.
type OSEnvironment struct {
	home  string
	props SystemProperties
}

// NewOSEnvironment locates the ambient installation from JAVA_HOME, or from 'java' on PATH,
// and captures its system properties through the probe store when one is configured.
// An ambient installation that cannot be located or run is reported with no properties,
// and with no home when it cannot be located, so it is described as unknown.
func NewOSEnvironment(logger hclog.Logger, opt ...Option) (*OSEnvironment, error) {
	logger = logger.Named("environment")

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	home, err := ambientHome(opts)
	if err != nil {
		logger.Warn("Unable to locate ambient Java installation", "error", err)
		return UnknownEnvironment(), nil
	}

	props, err := cachedProperties(logger, opts, executable(home, "java"))
	if err != nil {
		logger.Warn("Unable to probe ambient Java installation", "home", home, "error", err)
		props = SystemProperties{}
	}

	logger.Debug("Resolved ambient Java installation", "home", home, "version", props[PropJavaVersion])

	return &OSEnvironment{home: home, props: props}, nil
}

// UnknownEnvironment returns an environment with no home and no properties.
func UnknownEnvironment() *OSEnvironment {
	return &OSEnvironment{props: SystemProperties{}}
}

// NewStaticEnvironment returns an environment with a fixed home and properties.
func NewStaticEnvironment(home string, props SystemProperties) *OSEnvironment {
	return &OSEnvironment{home: home, props: maps.Clone(props)}
}

// JavaHome implements Environment.
func (e *OSEnvironment) JavaHome() string {
	return e.home
}

// SystemProperties implements Environment.
func (e *OSEnvironment) SystemProperties() SystemProperties {
	return maps.Clone(e.props)
}

// ambientHome resolves the ambient installation home.
func ambientHome(opts Options) (string, error) {
	if home := strings.TrimSpace(opts.getenv(EnvVarJavaHome)); home != "" {
		if !files.IsDir(home) {
			return "", fmt.Errorf("%s '%s' is not a directory", EnvVarJavaHome, home)
		}
		return filepath.Abs(home)
	}

	launcher, err := opts.lookup("java")
	if err != nil {
		return "", fmt.Errorf("no ambient Java installation found: set %s or put 'java' on PATH: %w", EnvVarJavaHome, err)
	}

	if resolved, err := filepath.EvalSymlinks(launcher); err == nil {
		launcher = resolved
	}

	// <home>/bin/java
	return filepath.Abs(filepath.Dir(filepath.Dir(launcher)))
}
