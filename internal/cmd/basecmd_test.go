package cmd

import (
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/buildenv/javainst/internal/config"
	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/flags"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/probe"
	"github.com/buildenv/javainst/internal/version"
)

// fakeProber describes homes by their base name.
type fakeProber struct {
	homes   map[string]installation.Metadata
	current installation.Metadata
}

func (f *fakeProber) Current(inst *installation.Installation) {
	_ = inst.Configure(f.current)
}

func (f *fakeProber) Check(home string) (installation.Metadata, error) {
	md, ok := f.homes[filepath.Base(home)]
	if !ok {
		return installation.Metadata{}, apperrors.ErrInvalidInstallationPath
	}
	return md, nil
}

func newFakeProber() *fakeProber {
	return &fakeProber{
		homes: map[string]installation.Metadata{
			"jdk7":  {Version: version.Of(7), DisplayName: "Oracle JDK 7", Vendor: "Oracle"},
			"jdk11": {Version: version.Of(11), DisplayName: "OpenJDK 11", Vendor: "OpenJDK"},
		},
		current: installation.Metadata{Version: version.Of(8), DisplayName: "Oracle JDK 8", Vendor: "Oracle"},
	}
}

func testBaseCmd() *BaseCmd {
	c := &BaseCmd{}
	c.SetLogger(hclog.NewNullLogger())
	return c
}

func TestBaseCmd_Logger_ReusesConfigured(t *testing.T) {
	t.Parallel()

	logger := hclog.NewNullLogger()
	c := &BaseCmd{}
	c.SetLogger(logger)

	require.Equal(t, logger, c.Logger())
}

func TestBaseCmd_Resolver_Precedence(t *testing.T) {
	t.Cleanup(func() { flags.Properties = nil })
	flags.Properties = []string{"java7Home=/cli/jdk7"}
	t.Setenv("JAVA7_HOME", "/env/jdk7")
	t.Setenv("JAVA6_HOME", "/env/jdk6")

	cfg := config.Default()
	cfg.Properties = map[string]string{"java7Home": "/cfg/jdk7", "testJavaHome": "/cfg/jdk11"}

	resolver, err := testBaseCmd().Resolver(cfg)
	require.NoError(t, err)

	v, ok := resolver.Resolve("java7Home")
	require.True(t, ok)
	require.Equal(t, "/cli/jdk7", v.Value)
	require.Equal(t, "command line", v.Source)

	v, ok = resolver.Resolve("testJavaHome")
	require.True(t, ok)
	require.Equal(t, "/cfg/jdk11", v.Value)
	require.Equal(t, "config file", v.Source)

	v, ok = resolver.Resolve("java6Home")
	require.True(t, ok)
	require.Equal(t, "/env/jdk6", v.Value)
}

func TestBaseCmd_Resolver_InvalidAssignment(t *testing.T) {
	t.Cleanup(func() { flags.Properties = nil })
	flags.Properties = []string{"java7Home"}

	_, err := testBaseCmd().Resolver(config.Default())
	require.ErrorContains(t, err, "expected key=value")
}

func TestBaseCmd_Registry(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Properties = map[string]string{
		"java7Home":    filepath.Join(dir, "jdk7"),
		"testJavaHome": filepath.Join(dir, "jdk11"),
	}
	env := probe.NewStaticEnvironment(filepath.Join(dir, "jdk8"), nil)

	reg, err := testBaseCmd().Registry(cfg, newFakeProber(), env)
	require.NoError(t, err)

	primary, ok := reg.Primary()
	require.True(t, ok)
	require.Equal(t, "Oracle JDK 7", primary.DisplayName())
	require.Equal(t, "OpenJDK 11", reg.ForTest().DisplayName())
	require.Equal(t, "Oracle JDK 8", reg.Current().DisplayName())
	require.Equal(t, config.DefaultCompilationProperty, reg.PrimaryProperty())
}

func TestBaseCmd_Registry_InvalidHint(t *testing.T) {
	cfg := config.Default()
	cfg.Properties = map[string]string{"java7Home": filepath.Join(t.TempDir(), "missing")}
	env := probe.NewStaticEnvironment(t.TempDir(), nil)

	reg, err := testBaseCmd().Registry(cfg, newFakeProber(), env)
	require.ErrorIs(t, err, apperrors.ErrInvalidInstallationPath)
	require.Nil(t, reg)
}

func TestBaseCmd_Checker(t *testing.T) {
	flags.NoProbeCache = true
	t.Cleanup(func() { flags.NoProbeCache = false })

	checker, err := testBaseCmd().Checker(config.Default())
	require.NoError(t, err)

	_, err = checker.Check(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, apperrors.ErrInvalidInstallationPath)
}
