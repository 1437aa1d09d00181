package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"

	"github.com/buildenv/javainst/internal/cache"
	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/files"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/perms"
)

var (
	_ Prober      = (*ExecProbe)(nil)
	_ Environment = (*OSEnvironment)(nil)
)

// Checker determines what Java installation, if any, lives at a path.
type Checker interface {
	// Check inspects an arbitrary installation home.
	// Errors wrap errors.ErrInvalidInstallationPath.
	Check(home string) (installation.Metadata, error)
}

// Prober checks installations and describes the one the process runs under.
type Prober interface {
	Checker

	// Current describes the installation the process runs under. It cannot fail:
	// values that cannot be determined are reported as unknown.
	Current(inst *installation.Installation)
}

// Environment reports the Java installation the process is running under.
type Environment interface {
	// JavaHome returns the home directory of the ambient installation.
	JavaHome() string

	// SystemProperties returns the system properties of the ambient installation.
	SystemProperties() SystemProperties
}

// ExecProbe inspects installations by running their 'java' launcher.
// It is safe for concurrent use; concurrent checks of the same home run the launcher once.
// NewExecProbe should be used to create instances of ExecProbe.
type ExecProbe struct {
	logger hclog.Logger
	env    Environment
	opts   Options
	group  singleflight.Group
}

// NewExecProbe creates a probe which describes the ambient installation using env.
func NewExecProbe(logger hclog.Logger, env Environment, opt ...Option) (*ExecProbe, error) {
	if env == nil {
		return nil, fmt.Errorf("environment cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &ExecProbe{
		logger: logger.Named("probe"),
		env:    env,
		opts:   opts,
	}, nil
}

// Current implements Prober.
func (p *ExecProbe) Current(inst *installation.Installation) {
	md, err := Describe(inst.Home(), p.env.SystemProperties())
	if err != nil {
		p.logger.Warn("Unable to determine ambient Java version", "home", inst.Home(), "error", err)
		md = installation.Metadata{DisplayName: UnknownDisplayName}
	}

	if err := inst.Configure(md); err != nil {
		p.logger.Debug("Ambient installation already described", "home", inst.Home(), "error", err)
	}
}

// Check implements Prober.
func (p *ExecProbe) Check(home string) (installation.Metadata, error) {
	abs, err := filepath.Abs(home)
	if err != nil {
		return installation.Metadata{}, fmt.Errorf("%w: '%s': %w", apperrors.ErrInvalidInstallationPath, home, err)
	}
	home = filepath.Clean(abs)

	if !files.IsDir(home) {
		return installation.Metadata{}, fmt.Errorf(
			"%w: '%s' does not exist or is not a directory",
			apperrors.ErrInvalidInstallationPath,
			home,
		)
	}

	launcher := executable(home, "java")
	if !files.IsExecutableFile(launcher) {
		return installation.Metadata{}, fmt.Errorf(
			"%w: '%s' has no executable '%s'",
			apperrors.ErrInvalidInstallationPath,
			home,
			launcher,
		)
	}

	v, err, shared := p.group.Do(home, func() (any, error) {
		return p.properties(launcher)
	})
	if err != nil {
		return installation.Metadata{}, fmt.Errorf("%w: '%s': %w", apperrors.ErrInvalidInstallationPath, home, err)
	}
	if shared {
		p.logger.Trace("Shared probe result", "home", home)
	}

	md, err := Describe(home, v.(SystemProperties))
	if err != nil {
		return installation.Metadata{}, fmt.Errorf(
			"%w: '%s' is not a supported Java installation: %w",
			apperrors.ErrInvalidInstallationPath,
			home,
			err,
		)
	}

	p.logger.Debug("Probed installation", "home", home, "version", md.Version.String(), "display", md.DisplayName)
	return md, nil
}

// properties returns the system properties of the launcher, from the store when possible.
func (p *ExecProbe) properties(launcher string) (SystemProperties, error) {
	return cachedProperties(p.logger, p.opts, launcher)
}

// cachedProperties runs the launcher unless the store holds an entry for it,
// and records fresh output in the store.
func cachedProperties(logger hclog.Logger, opts Options, launcher string) (SystemProperties, error) {
	store := opts.store
	if store == nil || !store.Enabled() {
		return runLauncher(opts, launcher)
	}

	key, err := launcherKey(launcher)
	if err != nil {
		return runLauncher(opts, launcher)
	}

	if path, ok := store.Get(key); ok {
		props, err := readProperties(path)
		if err == nil {
			return props, nil
		}
		logger.Warn("Ignoring unreadable probe cache entry", "path", path, "error", err)
	}

	props, err := runLauncher(opts, launcher)
	if err != nil {
		return nil, err
	}

	if _, err := store.Put(key, func(path string) error { return writeProperties(path, props) }); err != nil {
		logger.Warn("Failed to cache probe result", "launcher", launcher, "error", err)
	}

	return props, nil
}

// runLauncher executes 'java -XshowSettings:properties -version' and parses its output.
func runLauncher(opts Options, launcher string) (SystemProperties, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	out, err := opts.runner(ctx, launcher, "-XshowSettings:properties", "-version")
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("'%s' did not finish within %v", launcher, opts.timeout)
		}
		return nil, fmt.Errorf("failed to run '%s': %w", launcher, err)
	}

	props := ParseSystemProperties(out)
	if len(props) == 0 {
		return nil, fmt.Errorf("'%s' did not report any system properties", launcher)
	}

	return props, nil
}

// launcherKey identifies a launcher binary by location, size and modification time.
func launcherKey(launcher string) (string, error) {
	info, err := os.Stat(launcher)
	if err != nil {
		return "", err
	}

	return cache.Key(
		launcher,
		strconv.FormatInt(info.Size(), 10),
		strconv.FormatInt(info.ModTime().UnixNano(), 10),
	), nil
}

func readProperties(path string) (SystemProperties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var props SystemProperties
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("empty probe cache entry")
	}

	return props, nil
}

func writeProperties(path string, props SystemProperties) error {
	data, err := json.Marshal(props)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perms.SecureFile)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func osGetenv(key string) string {
	return os.Getenv(key)
}
