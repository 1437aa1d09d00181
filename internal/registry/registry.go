package registry

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/go-hclog"

	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/probe"
	"github.com/buildenv/javainst/internal/version"
)

const registryName = "registry"

// Registry holds the known Java installations and selects one per requested Java version.
// The ambient (current) installation is always known and is kept apart from the hinted installations.
// A Registry is read-only once built and safe to share.
// New should be used to create instances of Registry.
type Registry struct {
	logger hclog.Logger

	// byVersion holds the hinted compilation installations, excluding the current one.
	byVersion map[version.Version]*installation.Installation

	current *installation.Installation
	test    *installation.Installation

	primaryProperty string
	primary         *installation.Installation

	// hintedBy maps each hinted installation to the property that supplied it.
	hintedBy map[*installation.Installation]string
}

// New builds a registry from hints.
// Each hinted home is probed; if any probe fails, no registry is returned.
// The current installation comes from env and is described with prober.Current.
func New(
	logger hclog.Logger,
	prober probe.Prober,
	env probe.Environment,
	hints Hints,
	opt ...installation.Option,
) (*Registry, error) {
	if prober == nil {
		return nil, fmt.Errorf("prober cannot be nil")
	}
	if env == nil {
		return nil, fmt.Errorf("environment cannot be nil")
	}

	logger = logger.Named(registryName)

	r := &Registry{
		logger:          logger,
		byVersion:       make(map[version.Version]*installation.Installation, len(hints.Compilation)),
		primaryProperty: hints.PrimaryProperty,
		hintedBy:        make(map[*installation.Installation]string, len(hints.Compilation)+1),
	}

	for _, h := range hints.Compilation {
		inst, err := detect(prober, h, opt...)
		if err != nil {
			return nil, err
		}

		if existing, ok := r.byVersion[inst.Version()]; ok {
			logger.Warn(
				"Multiple installations hinted for the same Java version, using the last one",
				"version", inst.Version().String(),
				"ignored", existing.Home(),
				"used", inst.Home(),
			)
		}

		r.byVersion[inst.Version()] = inst
		r.hintedBy[inst] = h.Property
		if h.Property == hints.PrimaryProperty && r.primary == nil {
			r.primary = inst
		}

		logger.Debug("Registered hinted installation", "property", h.Property, "source", h.Source, "installation", inst.String())
	}

	r.current = installation.NewInstallation(true, env.JavaHome(), opt...)
	prober.Current(r.current)
	logger.Debug("Registered current installation", "installation", r.current.String())

	r.test = r.current
	if hints.Test != nil {
		inst, err := detect(prober, *hints.Test, opt...)
		if err != nil {
			return nil, err
		}
		r.test = inst
		r.hintedBy[inst] = hints.Test.Property
		logger.Debug("Registered test installation", "property", hints.Test.Property, "installation", inst.String())
	}

	return r, nil
}

// detect creates an installation for the hinted home and applies the probe result.
func detect(prober probe.Prober, h Hint, opt ...installation.Option) (*installation.Installation, error) {
	inst := installation.NewInstallation(false, h.Home, opt...)

	md, err := prober.Check(inst.Home())
	if err != nil {
		return nil, fmt.Errorf("property '%s' (%s): %w", h.Property, h.Source, err)
	}

	if err := inst.Configure(md); err != nil {
		return nil, err
	}

	return inst, nil
}

// Current returns the installation the process is running under.
func (r *Registry) Current() *installation.Installation {
	return r.current
}

// ForTest returns the installation tests should run with: the hinted test installation, or the current one.
func (r *Registry) ForTest() *installation.Installation {
	return r.test
}

// PrimaryProperty returns the name of the primary compilation property.
func (r *Registry) PrimaryProperty() string {
	return r.primaryProperty
}

// Primary returns the installation hinted through the primary compilation property, if it was supplied.
func (r *Registry) Primary() (*installation.Installation, bool) {
	return r.primary, r.primary != nil
}

// PrimaryHintSet reports whether the primary compilation property was supplied.
func (r *Registry) PrimaryHintSet() bool {
	return r.primary != nil
}

// HintProperty returns the property that supplied inst, if it was hinted.
func (r *Registry) HintProperty(inst *installation.Installation) (string, bool) {
	p, ok := r.hintedBy[inst]
	return p, ok
}

// Hinted returns the hinted compilation installations ordered by Java version (one per version).
func (r *Registry) Hinted() []*installation.Installation {
	out := slices.Collect(maps.Values(r.byVersion))
	slices.SortFunc(out, func(a, b *installation.Installation) int {
		return cmp.Or(a.Version().Compare(b.Version()), cmp.Compare(a.Home(), b.Home()))
	})
	return out
}

// ForCompilation returns the installation to compile for the required Java version:
//   - the current installation when its version is the required one
//   - otherwise the hinted installation for exactly that version
//   - otherwise the current installation when it is newer than the required version
//
// It never selects an installation older than required.
func (r *Registry) ForCompilation(required version.Version) (*installation.Installation, error) {
	current := r.current.Version()

	switch {
	case required == current:
		return r.current, nil
	case r.byVersion[required] != nil:
		return r.byVersion[required], nil
	case required.AtMost(current):
		return r.current, nil
	default:
		return nil, fmt.Errorf(
			"%w: no Java installation found which supports Java version %s",
			apperrors.ErrNoCompatibleInstallation,
			required,
		)
	}
}
