package cmd

import (
	"github.com/buildenv/javainst/internal/cmd"
	cmdopts "github.com/buildenv/javainst/internal/cmd/options"
	"github.com/buildenv/javainst/internal/cmd/output"
	"github.com/buildenv/javainst/internal/config"
	"github.com/buildenv/javainst/internal/flags"
	"github.com/buildenv/javainst/internal/probe"
	"github.com/buildenv/javainst/internal/registry"
)

// probeBuilder returns the configured builder, falling back to the command's own BaseCmd.
func probeBuilder(baseCmd *cmd.BaseCmd, opts cmdopts.CmdOptions) cmd.ProbeBuilder {
	if opts.ProbeBuilder != nil {
		return opts.ProbeBuilder
	}
	return baseCmd
}

// loadProber loads the config file and creates the prober and environment for it.
func loadProber(
	loader config.Loader,
	builder cmd.ProbeBuilder,
) (*config.Config, probe.Prober, probe.Environment, error) {
	cfg, err := loader.Load(flags.ConfigFile)
	if err != nil {
		return nil, nil, nil, err
	}

	prober, env, err := builder.Build(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, prober, env, nil
}

// loadRegistry loads the config file and builds a registry from its hints.
func loadRegistry(
	baseCmd *cmd.BaseCmd,
	loader config.Loader,
	builder cmd.ProbeBuilder,
) (*config.Config, *registry.Registry, error) {
	cfg, prober, env, err := loadProber(loader, builder)
	if err != nil {
		return nil, nil, err
	}

	reg, err := baseCmd.Registry(cfg, prober, env)
	if err != nil {
		return nil, nil, err
	}

	return cfg, reg, nil
}

// handleError renders err with the handler and still reports it to the caller,
// so structured output carries the error while the exit status reflects the failure.
func handleError[T any](h output.Handler[T], err error) error {
	if herr := h.HandleError(err); herr != nil {
		return herr
	}
	return err
}
