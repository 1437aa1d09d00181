package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/buildenv/javainst/internal/cmd"
	cmdopts "github.com/buildenv/javainst/internal/cmd/options"
	"github.com/buildenv/javainst/internal/flags"
	"github.com/buildenv/javainst/internal/perms"
)

var appVersion = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*cmd.BaseCmd
	logFile io.Closer
}

// Execute runs the root command against os.Args.
func Execute() error {
	rootCmd, err := NewRootCmd(&RootCmd{BaseCmd: &cmd.BaseCmd{}})
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

// NewRootCmd creates the root command and registers every subcommand.
// Options are passed through to the subcommands.
func NewRootCmd(c *RootCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:               "javainst <command> [args]",
		Short:             "Locates, probes and selects Java installations for a build.",
		Long:              c.longDescription(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           appVersion,
		PersistentPreRunE: c.configureLogger,
		PersistentPostRun: c.closeLogger,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())
	rootCmd.MarkFlagsMutuallyExclusive(flags.FlagNameNoProbeCache, flags.FlagNameRefreshProbeCache)

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInitCmd,
		NewListCmd,
		NewSelectCmd,
		NewProbeCmd,
		NewValidateCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(c.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'javainst' CLI knows which Java installations a build can use.

It probes the installation the build runs with, and the installations hinted through
build properties (such as 'java7Home') or environment variables (such as 'JAVA7_HOME').
It selects an installation per required Java version, and checks that the installations
in use are the ones the remote build cache expects.`
}

// configureLogger replaces the command's logger once flags have been parsed.
// If no log path is set, nothing is logged.
func (c *RootCmd) configureLogger(_ *cobra.Command, _ []string) error {
	logPath := strings.TrimSpace(flags.LogPath)

	logOutput := io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			return fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
		c.logFile = f
	}

	c.SetLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "javainst",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	}))

	return nil
}

func (c *RootCmd) closeLogger(_ *cobra.Command, _ []string) {
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}
}

func getLogLevel() string {
	lvl := strings.ToLower(strings.TrimSpace(flags.LogLevel))
	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return flags.DefaultLogLevel
	}
}
