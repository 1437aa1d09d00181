// Package policy checks that the Java installations in use are the ones a remote build cache expects,
// so that builds on different machines produce the same outputs and get cache hits.
package policy

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/installation"
)

// Header is the first line of every policy violation message.
const Header = "In order to have cache hits from the remote build cache, your environment needs to be configured accordingly!"

// Installations is the view of a registry the validator needs.
type Installations interface {
	// Current returns the installation the process runs under.
	Current() *installation.Installation

	// Primary returns the installation supplied through the primary compilation property, if any.
	Primary() (*installation.Installation, bool)

	// PrimaryProperty names the primary compilation property, e.g. 'java7Home'.
	PrimaryProperty() string
}

// BuildCache reports how the remote build cache is configured.
type BuildCache interface {
	// RemoteConfigured reports whether a remote cache destination is configured.
	RemoteConfigured() bool

	// RemoteEnabled reports whether the remote cache is enabled.
	RemoteEnabled() bool
}

// ViolationError lists every problem that prevents remote cache hits.
type ViolationError struct {
	Problems []string
}

func (e *ViolationError) Error() string {
	return Message(e.Problems)
}

func (e *ViolationError) Unwrap() error {
	return apperrors.ErrCachePolicyViolation
}

// Message composes the multi-line report for the given problems.
func Message(problems []string) string {
	lines := make([]string, 0, len(problems)+2)
	lines = append(lines, Header, "Problems found:")
	for _, p := range problems {
		lines = append(lines, "    - "+p)
	}
	return strings.Join(lines, "\n")
}

// Validator compares the installations in use with the expected ones.
// NewValidator should be used to create instances of Validator.
type Validator struct {
	logger hclog.Logger
	opts   Options
}

// NewValidator creates a validator.
func NewValidator(logger hclog.Logger, opt ...Option) (*Validator, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Validator{
		logger: logger.Named("policy"),
		opts:   opts,
	}, nil
}

// check is one independent policy rule.
type check struct {
	failed  bool
	problem string
}

// Problems returns every problem found, in a stable order. Nil means the environment is fine.
func (v *Validator) Problems(installs Installations) []string {
	property := installs.PrimaryProperty()
	primary, primarySet := installs.Primary()
	current := installs.Current()

	checks := []check{
		{
			failed:  !primarySet,
			problem: fmt.Sprintf("'%s' build or environment property not set.", property),
		},
		{
			failed: primarySet &&
				v.opts.compilationDisplayName != "" &&
				primary.DisplayName() != v.opts.compilationDisplayName,
			problem: fmt.Sprintf(
				"'%s' needs to point to %s, but points to %s.",
				property,
				v.opts.compilationDisplayName,
				displayName(primary),
			),
		},
		{
			failed: v.opts.runtimeDisplayName != "" && current.DisplayName() != v.opts.runtimeDisplayName,
			problem: fmt.Sprintf(
				"The build needs to run with %s, but has been started with %s.",
				v.opts.runtimeDisplayName,
				displayName(current),
			),
		},
	}

	var problems []string
	for _, c := range checks {
		if c.failed {
			problems = append(problems, c.problem)
		}
	}

	return problems
}

// Report is the outcome of checking installations against the policy.
type Report struct {
	// Problems lists every policy problem found, in check order.
	Problems []string

	// Warning is the composed message logged when problems are found but not fatal.
	Warning string
}

// Validate checks installs against the policy.
// When problems are found and the remote cache is enabled, a *ViolationError is returned.
// Otherwise problems are logged as a warning and the composed message is returned.
// Both results are empty when nothing is wrong.
func (v *Validator) Validate(installs Installations, buildCache BuildCache) (string, error) {
	report, err := v.Evaluate(installs, buildCache)
	return report.Warning, err
}

// Evaluate runs the checks once and reports every problem found alongside the outcome of Validate.
func (v *Validator) Evaluate(installs Installations, buildCache BuildCache) (Report, error) {
	problems := v.Problems(installs)
	if len(problems) == 0 {
		v.logger.Debug("Environment is configured for remote build cache hits")
		return Report{}, nil
	}

	if buildCache != nil && buildCache.RemoteConfigured() && buildCache.RemoteEnabled() {
		return Report{Problems: problems}, &ViolationError{Problems: problems}
	}

	msg := Message(problems)
	v.logger.Warn(msg)

	return Report{Problems: problems, Warning: msg}, nil
}

func displayName(inst *installation.Installation) string {
	if inst == nil {
		return "nothing"
	}
	return inst.DisplayName()
}
