package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/buildenv/javainst/internal/cmd"
	cmdopts "github.com/buildenv/javainst/internal/cmd/options"
	"github.com/buildenv/javainst/internal/config"
	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/probe"
	"github.com/buildenv/javainst/internal/version"
)

// fakeLoader returns a fixed config.
type fakeLoader struct {
	cfg *config.Config
	err error
}

func (f *fakeLoader) Load(_ string) (*config.Config, error) {
	return f.cfg, f.err
}

// fakeProber describes homes by their base name; unknown homes are invalid.
type fakeProber struct {
	current installation.Metadata
	homes   map[string]installation.Metadata
}

func (f *fakeProber) Current(inst *installation.Installation) {
	_ = inst.Configure(f.current)
}

func (f *fakeProber) Check(home string) (installation.Metadata, error) {
	md, ok := f.homes[filepath.Base(home)]
	if !ok {
		return installation.Metadata{}, fmt.Errorf("%w: '%s' is not a Java installation", apperrors.ErrInvalidInstallationPath, home)
	}
	return md, nil
}

// fakeBuilder returns a fakeProber and a static environment rooted at 'jdk8'.
type fakeBuilder struct {
	prober *fakeProber
	root   string
	err    error
	builds int
}

func (f *fakeBuilder) Build(_ *config.Config) (probe.Prober, probe.Environment, error) {
	f.builds++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.prober, probe.NewStaticEnvironment(filepath.Join(f.root, "jdk8"), nil), nil
}

func (f *fakeBuilder) Checker(_ *config.Config) (probe.Checker, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prober, nil
}

func newFakeBuilder(root string, current installation.Metadata) *fakeBuilder {
	return &fakeBuilder{
		root: root,
		prober: &fakeProber{
			current: current,
			homes: map[string]installation.Metadata{
				"jdk7":     {Version: version.Of(7), DisplayName: "Oracle JDK 7", Vendor: "Oracle"},
				"openjdk7": {Version: version.Of(7), DisplayName: "OpenJDK 7", Vendor: "OpenJDK"},
				"jdk6":     {Version: version.Of(6), DisplayName: "Oracle JDK 6", Vendor: "Oracle"},
				"jdk11":    {Version: version.Of(11), DisplayName: "OpenJDK 11", Vendor: "OpenJDK"},
			},
		},
	}
}

func oracle8() installation.Metadata {
	return installation.Metadata{Version: version.Of(8), DisplayName: "Oracle JDK 8", Vendor: "Oracle"}
}

// testConfig hints java7Home (and optionally the test home) at homes under root.
func testConfig(root string, compilationHome string, testHome string) *config.Config {
	cfg := config.Default()
	if compilationHome != "" {
		cfg.Properties[config.DefaultCompilationProperty] = filepath.Join(root, compilationHome)
	}
	if testHome != "" {
		cfg.Properties[config.DefaultTestProperty] = filepath.Join(root, testHome)
	}
	return cfg
}

func testBaseCmd() *cmd.BaseCmd {
	base := &cmd.BaseCmd{}
	base.SetLogger(hclog.NewNullLogger())
	return base
}

func testOptions(cfg *config.Config, builder cmd.ProbeBuilder) []cmdopts.CmdOption {
	return []cmdopts.CmdOption{
		cmdopts.WithConfigLoader(&fakeLoader{cfg: cfg}),
		cmdopts.WithProbeBuilder(builder),
	}
}

// execute runs c with args and returns what it wrote to stdout.
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(io.Discard)
	c.SetArgs(args)
	c.SilenceUsage = true
	c.SilenceErrors = true

	err := c.Execute()
	return out.String(), err
}
