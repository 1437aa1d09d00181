package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildenv/javainst/internal/cmd/output"
	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/printer"
	"github.com/buildenv/javainst/internal/version"
)

func selectJSON(t *testing.T, current installation.Metadata, compilationHome string, args ...string) (printer.InstallationResult, error) {
	t.Helper()

	root := t.TempDir()
	c, err := NewSelectCmd(testBaseCmd(), testOptions(testConfig(root, compilationHome, "jdk11"), newFakeBuilder(root, current))...)
	require.NoError(t, err)

	out, err := execute(t, c, append([]string{"--format", "json"}, args...)...)
	if err != nil {
		return printer.InstallationResult{}, err
	}

	var payload output.ResultPayload[printer.InstallationResult]
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	return payload.Result, nil
}

func TestSelectCmd_ForCompilation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		current         installation.Metadata
		compilationHome string
		required        string
		wantName        string
		wantRole        string
	}{
		{
			name:            "current matches exactly",
			current:         oracle8(),
			compilationHome: "jdk7",
			required:        "1.8",
			wantName:        "Oracle JDK 8",
			wantRole:        printer.RoleCurrent,
		},
		{
			name:            "hinted installation for older version",
			current:         oracle8(),
			compilationHome: "jdk7",
			required:        "7",
			wantName:        "Oracle JDK 7",
			wantRole:        printer.RoleCompilation,
		},
		{
			name:     "newer current serves older version without hint",
			current:  oracle8(),
			required: "1.6",
			wantName: "Oracle JDK 8",
			wantRole: printer.RoleCurrent,
		},
		{
			name:            "current wins over hint for the same version",
			current:         installation.Metadata{Version: version.Of(7), DisplayName: "Zulu JDK 7", Vendor: "Zulu"},
			compilationHome: "jdk7",
			required:        "1.7",
			wantName:        "Zulu JDK 7",
			wantRole:        printer.RoleCurrent,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := selectJSON(t, tc.current, tc.compilationHome, tc.required)
			require.NoError(t, err)
			require.Equal(t, tc.wantName, result.DisplayName)
			require.Equal(t, tc.wantRole, result.Role)
		})
	}
}

func TestSelectCmd_NoCompatibleInstallation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	c, err := NewSelectCmd(testBaseCmd(), testOptions(testConfig(root, "jdk7", ""), newFakeBuilder(root, oracle8()))...)
	require.NoError(t, err)

	out, err := execute(t, c, "11")
	require.ErrorIs(t, err, apperrors.ErrNoCompatibleInstallation)
	require.ErrorContains(t, err, "11")
	require.Empty(t, out)
}

func TestSelectCmd_ForTest(t *testing.T) {
	t.Parallel()

	result, err := selectJSON(t, oracle8(), "jdk7", "--test")
	require.NoError(t, err)
	require.Equal(t, "OpenJDK 11", result.DisplayName)
	require.Equal(t, printer.RoleTest, result.Role)
	require.Equal(t, "testJavaHome", result.Property)
}

func TestSelectCmd_Args(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing version", args: nil, wantErr: "a Java version is required"},
		{name: "blank version", args: []string{"  "}, wantErr: "a Java version is required"},
		{name: "version with test flag", args: []string{"--test", "7"}, wantErr: "no Java version can be given"},
		{name: "unparseable version", args: []string{"seven"}, wantErr: "invalid Java version 'seven'"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			c, err := NewSelectCmd(testBaseCmd(), testOptions(testConfig(root, "", ""), newFakeBuilder(root, oracle8()))...)
			require.NoError(t, err)

			_, err = execute(t, c, tc.args...)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
