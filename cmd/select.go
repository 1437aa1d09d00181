package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buildenv/javainst/internal/cmd"
	cmdopts "github.com/buildenv/javainst/internal/cmd/options"
	"github.com/buildenv/javainst/internal/config"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/printer"
	"github.com/buildenv/javainst/internal/registry"
	"github.com/buildenv/javainst/internal/version"
)

const flagNameTest = "test"

type SelectCmd struct {
	*cmd.BaseCmd
	Format       cmd.OutputFormat
	ForTest      bool
	cfgLoader    config.Loader
	probeBuilder cmd.ProbeBuilder
	printer      *printer.InstallationPrinter
}

func NewSelectCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &SelectCmd{
		BaseCmd:      baseCmd,
		Format:       cmd.FormatText,
		cfgLoader:    opts.ConfigLoader,
		probeBuilder: probeBuilder(baseCmd, opts),
		printer:      &printer.InstallationPrinter{},
	}

	cobraCommand := &cobra.Command{
		Use:   "select <java-version>",
		Short: "Selects the Java installation to compile for a Java version",
		Long:  c.longDescription(),
		Args:  c.validateArgs,
		RunE:  c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	cobraCommand.Flags().BoolVar(
		&c.ForTest,
		flagNameTest,
		false,
		"Select the installation tests run with instead (no Java version is accepted)",
	)

	return cobraCommand, nil
}

func (c *SelectCmd) longDescription() string {
	return `Selects the Java installation to compile for the given Java version (e.g. '1.7', '7' or '11').

The installation the build runs with is used when it is exactly the required version.
Otherwise the installation hinted for that version is used, and failing that the current
installation when it is newer than the required version. An older installation is never selected.`
}

func (c *SelectCmd) validateArgs(_ *cobra.Command, args []string) error {
	if c.ForTest {
		if len(args) != 0 {
			return fmt.Errorf("no Java version can be given with --%s", flagNameTest)
		}
		return nil
	}

	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("a Java version is required")
	}

	return nil
}

func (c *SelectCmd) run(cobraCmd *cobra.Command, args []string) error {
	handler, err := cmd.FormatHandler[printer.InstallationResult](cobraCmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	var required version.Version
	if !c.ForTest {
		required, err = version.Parse(args[0])
		if err != nil {
			return handleError(handler, err)
		}
	}

	_, reg, err := loadRegistry(c.BaseCmd, c.cfgLoader, c.probeBuilder)
	if err != nil {
		return handleError(handler, err)
	}

	if c.ForTest {
		return handler.HandleResult(selectedResult(reg, printer.RoleTest, reg.ForTest()))
	}

	inst, err := reg.ForCompilation(required)
	if err != nil {
		return handleError(handler, err)
	}

	c.Logger().Debug("Selected installation", "required", required.String(), "installation", inst.String())

	return handler.HandleResult(selectedResult(reg, printer.RoleCompilation, inst))
}

func selectedResult(reg *registry.Registry, role string, inst *installation.Installation) printer.InstallationResult {
	if inst.IsCurrent() {
		role = printer.RoleCurrent
	}
	property, _ := reg.HintProperty(inst)
	return printer.NewInstallationResult(role, property, inst)
}
