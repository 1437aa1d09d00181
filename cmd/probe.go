package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buildenv/javainst/internal/cmd"
	cmdopts "github.com/buildenv/javainst/internal/cmd/options"
	"github.com/buildenv/javainst/internal/config"
	"github.com/buildenv/javainst/internal/flags"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/printer"
)

type ProbeCmd struct {
	*cmd.BaseCmd
	Format       cmd.OutputFormat
	cfgLoader    config.Loader
	probeBuilder cmd.ProbeBuilder
	printer      *printer.InstallationPrinter
}

func NewProbeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ProbeCmd{
		BaseCmd:      baseCmd,
		Format:       cmd.FormatText,
		cfgLoader:    opts.ConfigLoader,
		probeBuilder: probeBuilder(baseCmd, opts),
		printer:      &printer.InstallationPrinter{},
	}

	cobraCommand := &cobra.Command{
		Use:   "probe <java-home>",
		Short: "Probes the Java installation at a path",
		Long:  c.longDescription(),
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand, nil
}

func (c *ProbeCmd) longDescription() string {
	return `Runs the Java launcher of the installation at the given path and reports its Java version,
vendor and display name (e.g. 'Oracle JDK 7' or 'OpenJDK JRE 8').

Probe results are cached per launcher; use --no-probe-cache or --refresh-probe-cache to bypass the cache.`
}

func (c *ProbeCmd) run(cobraCmd *cobra.Command, args []string) error {
	handler, err := cmd.FormatHandler[printer.InstallationResult](cobraCmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	home := strings.TrimSpace(args[0])
	if home == "" {
		return handleError(handler, fmt.Errorf("installation path cannot be empty"))
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return handleError(handler, err)
	}

	checker, err := c.probeBuilder.Checker(cfg)
	if err != nil {
		return handleError(handler, err)
	}

	inst := installation.NewInstallation(false, home)

	md, err := checker.Check(inst.Home())
	if err != nil {
		return handleError(handler, err)
	}

	if err := inst.Configure(md); err != nil {
		return handleError(handler, err)
	}

	return handler.HandleResult(printer.NewInstallationResult("", "", inst))
}
