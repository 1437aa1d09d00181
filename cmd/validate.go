package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildenv/javainst/internal/cmd"
	cmdopts "github.com/buildenv/javainst/internal/cmd/options"
	"github.com/buildenv/javainst/internal/config"
	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/policy"
	"github.com/buildenv/javainst/internal/printer"
)

type ValidateCmd struct {
	*cmd.BaseCmd
	Format       cmd.OutputFormat
	Strict       bool
	cfgLoader    config.Loader
	probeBuilder cmd.ProbeBuilder
	printer      *printer.ValidationPrinter
}

func NewValidateCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	loader := config.NewValidatingLoader(
		opts.ConfigLoader,
		config.RequireCompilationHints,
		config.RequireRemoteURL,
	)

	c := &ValidateCmd{
		BaseCmd:      baseCmd,
		Format:       cmd.FormatText,
		cfgLoader:    loader,
		probeBuilder: probeBuilder(baseCmd, opts),
		printer:      &printer.ValidationPrinter{},
	}

	cobraCommand := &cobra.Command{
		Use:   "validate",
		Short: "Checks the Java installations against the remote build cache policy",
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

	cobraCommand.Flags().BoolVar(
		&c.Strict,
		"strict",
		false,
		"Fail on policy problems even when the remote build cache is not enabled",
	)

	return cobraCommand, nil
}

func (c *ValidateCmd) longDescription() string {
	return `Checks that the primary compilation installation and the installation the build runs with
are the ones the remote build cache expects, as configured in the [policy] section.

When a remote build cache is configured and enabled, any problem fails the command.
Otherwise problems are reported as a warning, unless --strict is given.`
}

func (c *ValidateCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.FormatHandler[printer.ValidationResult](cobraCmd.OutOrStdout(), c.Format, c.printer)
	if err != nil {
		return err
	}

	cfg, reg, err := loadRegistry(c.BaseCmd, c.cfgLoader, c.probeBuilder)
	if err != nil {
		return handleError(handler, err)
	}

	validator, err := policy.NewValidator(
		c.Logger(),
		policy.WithCompilationDisplayName(cfg.Policy.CompilationDisplayName),
		policy.WithRuntimeDisplayName(cfg.Policy.RuntimeDisplayName),
	)
	if err != nil {
		return handleError(handler, err)
	}

	report, violation := validator.Evaluate(reg, cfg.BuildCache)

	result := printer.ValidationResult{
		RemoteCacheEnabled: cfg.BuildCache.RemoteConfigured() && cfg.BuildCache.RemoteEnabled(),
		Problems:           report.Problems,
	}
	if len(result.Problems) > 0 {
		result.Message = policy.Message(result.Problems)
	}

	if err := handler.HandleResult(result); err != nil {
		return err
	}

	if violation != nil || (c.Strict && len(result.Problems) > 0) {
		return fmt.Errorf("%w: %d problem(s) found", apperrors.ErrCachePolicyViolation, len(result.Problems))
	}

	return nil
}
