package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildenv/javainst/internal/cache"
	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/version"
)

const oracle7Output = `Property settings:
    file.encoding = UTF-8
    java.home = /opt/jdk7/jre
    java.runtime.name = Java(TM) SE Runtime Environment
    java.specification.version = 1.7
    java.vendor = Oracle Corporation
    java.version = 1.7.0_80
    java.vm.name = Java HotSpot(TM) 64-Bit Server VM
    sun.boot.class.path = /opt/jdk7/jre/lib/rt.jar
        /opt/jdk7/jre/lib/jce.jar

java version "1.7.0_80"
Java(TM) SE Runtime Environment (build 1.7.0_80-b15)
`

const openJDK8Output = `Property settings:
    java.runtime.name = OpenJDK Runtime Environment
    java.specification.version = 1.8
    java.vendor = Oracle Corporation
    java.version = 1.8.0_292
    java.vm.name = OpenJDK 64-Bit Server VM

openjdk version "1.8.0_292"
`

type fakeRunner struct {
	calls  atomic.Int32
	output string
	err    error
	delay  time.Duration
}

func (f *fakeRunner) run(ctx context.Context, _ string, _ ...string) ([]byte, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []byte(f.output), f.err
}

// fakeHome lays out <home>/bin/java (and javac when jdk is true).
func fakeHome(t *testing.T, jdk bool) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake launchers rely on execute bits")
	}

	home := t.TempDir()
	bin := filepath.Join(home, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "java"), []byte("#!/bin/sh\n"), 0o755))
	if jdk {
		require.NoError(t, os.WriteFile(filepath.Join(bin, "javac"), []byte("#!/bin/sh\n"), 0o755))
	}
	return home
}

func newProbe(t *testing.T, env Environment, opt ...Option) *ExecProbe {
	t.Helper()

	p, err := NewExecProbe(hclog.NewNullLogger(), env, opt...)
	require.NoError(t, err)
	return p
}

func TestParseSystemProperties(t *testing.T) {
	t.Parallel()

	props := ParseSystemProperties([]byte(oracle7Output))

	require.Equal(t, "1.7.0_80", props[PropJavaVersion])
	require.Equal(t, "Oracle Corporation", props[PropJavaVendor])
	require.Equal(t, "/opt/jdk7/jre/lib/rt.jar", props["sun.boot.class.path"])
	require.NotContains(t, props, "/opt/jdk7/jre/lib/jce.jar")
	require.Len(t, props, 8)
}

func TestSystemProperties_Vendor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		props    SystemProperties
		expected string
	}{
		{
			name:     "oracle hotspot",
			props:    SystemProperties{PropJavaVendor: "Oracle Corporation", PropRuntimeName: "Java(TM) SE Runtime Environment"},
			expected: "Oracle",
		},
		{
			name:     "sun",
			props:    SystemProperties{PropJavaVendor: "Sun Microsystems Inc.", PropRuntimeName: "Java(TM) SE Runtime Environment"},
			expected: "Oracle",
		},
		{
			name:     "openjdk built by oracle",
			props:    SystemProperties{PropJavaVendor: "Oracle Corporation", PropRuntimeName: "OpenJDK Runtime Environment"},
			expected: "OpenJDK",
		},
		{
			name:     "zulu",
			props:    SystemProperties{PropJavaVendor: "Azul Systems, Inc.", PropRuntimeName: "OpenJDK Runtime Environment"},
			expected: "Azul Zulu",
		},
		{
			name:     "ibm",
			props:    SystemProperties{PropJavaVendor: "IBM Corporation"},
			expected: "IBM",
		},
		{
			name:     "temurin",
			props:    SystemProperties{PropJavaVendor: "Eclipse Adoptium", PropRuntimeName: "OpenJDK Runtime Environment"},
			expected: "Eclipse Temurin",
		},
		{
			name:     "unrecognized vendor kept",
			props:    SystemProperties{PropJavaVendor: "Acme JVMs"},
			expected: "Acme JVMs",
		},
		{
			name:     "nothing known",
			props:    SystemProperties{},
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, tc.props.Vendor())
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	jdk := fakeHome(t, true)
	jre := fakeHome(t, false)

	tests := []struct {
		name     string
		home     string
		output   string
		expected installation.Metadata
	}{
		{
			name:   "oracle jdk",
			home:   jdk,
			output: oracle7Output,
			expected: installation.Metadata{
				Version:     version.Of(7),
				DisplayName: "Oracle JDK 7",
				Vendor:      "Oracle",
				Name:        "Java(TM) SE Runtime Environment",
			},
		},
		{
			name:   "oracle jre",
			home:   jre,
			output: oracle7Output,
			expected: installation.Metadata{
				Version:     version.Of(7),
				DisplayName: "Oracle JRE 7",
				Vendor:      "Oracle",
				Name:        "Java(TM) SE Runtime Environment",
			},
		},
		{
			name:   "openjdk",
			home:   jdk,
			output: openJDK8Output,
			expected: installation.Metadata{
				Version:     version.Of(8),
				DisplayName: "OpenJDK 8",
				Vendor:      "OpenJDK",
				Name:        "OpenJDK Runtime Environment",
			},
		},
		{
			name:   "openjdk jre",
			home:   jre,
			output: openJDK8Output,
			expected: installation.Metadata{
				Version:     version.Of(8),
				DisplayName: "OpenJDK JRE 8",
				Vendor:      "OpenJDK",
				Name:        "OpenJDK Runtime Environment",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			md, err := Describe(tc.home, ParseSystemProperties([]byte(tc.output)))
			require.NoError(t, err)
			require.Equal(t, tc.expected, md)
		})
	}
}

func TestDescribe_UnknownVersion(t *testing.T) {
	t.Parallel()

	_, err := Describe(t.TempDir(), SystemProperties{PropJavaVendor: "Oracle Corporation"})
	require.Error(t, err)
}

func TestExecProbe_Check(t *testing.T) {
	t.Parallel()

	home := fakeHome(t, true)
	runner := &fakeRunner{output: oracle7Output}
	p := newProbe(t, NewStaticEnvironment(home, nil), WithCommandRunner(runner.run))

	md, err := p.Check(home)
	require.NoError(t, err)
	require.Equal(t, "Oracle JDK 7", md.DisplayName)
	require.Equal(t, version.Of(7), md.Version)
	require.Equal(t, int32(1), runner.calls.Load())
}

func TestExecProbe_Check_InvalidPaths(t *testing.T) {
	t.Parallel()

	noLauncher := t.TempDir()
	notADir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	tests := []struct {
		name   string
		home   string
		runner *fakeRunner
	}{
		{name: "missing directory", home: filepath.Join(t.TempDir(), "missing"), runner: &fakeRunner{}},
		{name: "file instead of directory", home: notADir, runner: &fakeRunner{}},
		{name: "no launcher", home: noLauncher, runner: &fakeRunner{}},
		{name: "launcher fails", home: fakeHome(t, true), runner: &fakeRunner{err: errors.New("exit status 1")}},
		{name: "no properties reported", home: fakeHome(t, true), runner: &fakeRunner{output: "garbage"}},
		{
			name:   "unknown version",
			home:   fakeHome(t, true),
			runner: &fakeRunner{output: "Property settings:\n    java.vendor = Acme\n"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := newProbe(t, NewStaticEnvironment(tc.home, nil), WithCommandRunner(tc.runner.run))

			_, err := p.Check(tc.home)
			require.ErrorIs(t, err, apperrors.ErrInvalidInstallationPath)
		})
	}
}

func TestExecProbe_Check_Timeout(t *testing.T) {
	t.Parallel()

	home := fakeHome(t, true)
	runner := &fakeRunner{output: oracle7Output, delay: time.Second}
	p := newProbe(
		t,
		NewStaticEnvironment(home, nil),
		WithCommandRunner(runner.run),
		WithTimeout(10*time.Millisecond),
	)

	_, err := p.Check(home)
	require.ErrorIs(t, err, apperrors.ErrInvalidInstallationPath)
	require.Contains(t, err.Error(), "did not finish")
}

func TestExecProbe_Check_UsesStore(t *testing.T) {
	t.Parallel()

	home := fakeHome(t, true)
	store, err := cache.NewStore(hclog.NewNullLogger(), cache.WithDirectory(t.TempDir()))
	require.NoError(t, err)

	runner := &fakeRunner{output: oracle7Output}
	first := newProbe(t, NewStaticEnvironment(home, nil), WithCommandRunner(runner.run), WithStore(store))
	md1, err := first.Check(home)
	require.NoError(t, err)

	// A new probe sharing the store does not run the launcher again.
	second := newProbe(t, NewStaticEnvironment(home, nil), WithCommandRunner(runner.run), WithStore(store))
	md2, err := second.Check(home)
	require.NoError(t, err)

	require.Equal(t, md1, md2)
	require.Equal(t, int32(1), runner.calls.Load())
}

func TestExecProbe_Check_ConcurrentCallsShareResult(t *testing.T) {
	t.Parallel()

	home := fakeHome(t, true)
	runner := &fakeRunner{output: oracle7Output, delay: 50 * time.Millisecond}
	p := newProbe(t, NewStaticEnvironment(home, nil), WithCommandRunner(runner.run))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			md, err := p.Check(home)
			assert.NoError(t, err)
			assert.Equal(t, "Oracle JDK 7", md.DisplayName)
		}()
	}
	wg.Wait()

	require.Less(t, runner.calls.Load(), int32(8))
}

func TestExecProbe_Current(t *testing.T) {
	t.Parallel()

	home := fakeHome(t, true)
	env := NewStaticEnvironment(home, ParseSystemProperties([]byte(openJDK8Output)))
	p := newProbe(t, env)

	inst := installation.NewInstallation(true, env.JavaHome())
	p.Current(inst)

	require.Equal(t, "OpenJDK 8", inst.DisplayName())
	require.Equal(t, version.Of(8), inst.Version())
}

func TestExecProbe_Current_NeverFails(t *testing.T) {
	t.Parallel()

	env := NewStaticEnvironment(t.TempDir(), SystemProperties{})
	p := newProbe(t, env)

	inst := installation.NewInstallation(true, env.JavaHome())
	p.Current(inst)

	require.True(t, inst.IsConfigured())
	require.Equal(t, UnknownDisplayName, inst.DisplayName())
	require.False(t, inst.Version().IsKnown())

	// Describing again leaves the installation untouched.
	p.Current(inst)
	require.Equal(t, UnknownDisplayName, inst.DisplayName())
}

func TestNewExecProbe_RequiresEnvironment(t *testing.T) {
	t.Parallel()

	_, err := NewExecProbe(hclog.NewNullLogger(), nil)
	require.Error(t, err)
}
