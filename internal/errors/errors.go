// Package errors defines domain-level errors used throughout the application.
// These errors represent failures while discovering, selecting or validating Java installations.
//
// NOTE: Important for developers
// Callers match these with errors.Is, so always wrap them (fmt.Errorf("%w: ...")) rather than
// returning a new error with similar text.
package errors

import (
	"errors"
)

var (
	// ErrInvalidInstallationPath indicates that a supplied path does not point to a usable Java installation.
	// Raised by the probe (missing directory, missing or non-executable launcher, unknown distribution)
	// and propagated unchanged through registry construction.
	ErrInvalidInstallationPath = errors.New("invalid installation path")

	// ErrUnsupportedMutation indicates an attempt to change the location of an installation after it was created.
	// This is always a programming error.
	ErrUnsupportedMutation = errors.New("unsupported mutation")

	// ErrNoCompatibleInstallation indicates that no known installation supports the requested Java version.
	// It is local to the request and does not invalidate the registry.
	ErrNoCompatibleInstallation = errors.New("no compatible installation")

	// ErrCachePolicyViolation indicates that the environment is not configured to get remote build cache hits.
	// Fatal only when the remote build cache is enabled.
	ErrCachePolicyViolation = errors.New("build cache policy violation")
)
