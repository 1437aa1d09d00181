package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/buildenv/javainst/internal/cmd"
	cmdopts "github.com/buildenv/javainst/internal/cmd/options"
	"github.com/buildenv/javainst/internal/config"
	"github.com/buildenv/javainst/internal/printer"
	"github.com/buildenv/javainst/internal/registry"
)

type ListCmd struct {
	*cmd.BaseCmd
	Format       cmd.OutputFormat
	cfgLoader    config.Loader
	probeBuilder cmd.ProbeBuilder
	printer      *printer.InstallationPrinter
}

func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd:      baseCmd,
		Format:       cmd.FormatText,
		cfgLoader:    opts.ConfigLoader,
		probeBuilder: probeBuilder(baseCmd, opts),
		printer:      &printer.InstallationPrinter{},
	}

	c.printer.SetHeader(func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "Java installations (%d total):\n", count)
	})

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists the current, test and hinted Java installations",
		Long:  c.longDescription(),
		Args:  cobra.NoArgs,
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

func (c *ListCmd) longDescription() string {
	return `Probes and lists the Java installations known to the build: the installation the build runs with,
the installation tests run with, and every installation hinted through a compilation property.
Hinted installations are ordered by Java version.`
}

func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.FormatHandler[printer.InstallationResult](cobraCmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	_, reg, err := loadRegistry(c.BaseCmd, c.cfgLoader, c.probeBuilder)
	if err != nil {
		return handleError(handler, err)
	}

	return handler.HandleResults(installationResults(reg)...)
}

// installationResults returns the current installation, the test installation when it differs,
// and the hinted compilation installations.
func installationResults(reg *registry.Registry) []printer.InstallationResult {
	results := []printer.InstallationResult{
		printer.NewInstallationResult(printer.RoleCurrent, "", reg.Current()),
	}

	if test := reg.ForTest(); test != reg.Current() {
		property, _ := reg.HintProperty(test)
		results = append(results, printer.NewInstallationResult(printer.RoleTest, property, test))
	}

	for _, inst := range reg.Hinted() {
		property, _ := reg.HintProperty(inst)
		results = append(results, printer.NewInstallationResult(printer.RoleCompilation, property, inst))
	}

	return results
}
