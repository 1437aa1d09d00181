package printer

import (
	"fmt"
	"io"

	"github.com/buildenv/javainst/internal/cmd/output"
)

var _ output.Printer[ValidationResult] = (*ValidationPrinter)(nil)

// ValidationResult is the output structure of a build cache policy check.
type ValidationResult struct {
	// RemoteCacheEnabled is true when a remote build cache is configured and enabled.
	RemoteCacheEnabled bool `json:"remoteCacheEnabled" yaml:"remote_cache_enabled"`

	// Problems lists every policy mismatch found, in check order.
	Problems []string `json:"problems" yaml:"problems"`

	// Message is the rendered policy message, empty when there are no problems.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// ValidationPrinter handles text output for policy checks.
type ValidationPrinter struct {
	headerFunc output.WriteFunc[ValidationResult]
	footerFunc output.WriteFunc[ValidationResult]
}

func (p *ValidationPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ValidationPrinter) SetHeader(fn output.WriteFunc[ValidationResult]) {
	p.headerFunc = fn
}

func (p *ValidationPrinter) Item(w io.Writer, result ValidationResult) error {
	if len(result.Problems) == 0 {
		_, _ = fmt.Fprintln(w, "✓ Java installations match the build cache policy")
		return nil
	}

	_, _ = fmt.Fprintln(w, result.Message)
	if !result.RemoteCacheEnabled {
		_, _ = fmt.Fprintln(w, "(remote build cache is not enabled, continuing)")
	}

	return nil
}

func (p *ValidationPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ValidationPrinter) SetFooter(fn output.WriteFunc[ValidationResult]) {
	p.footerFunc = fn
}
