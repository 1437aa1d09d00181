package printer

import (
	"fmt"
	"io"

	"github.com/buildenv/javainst/internal/cmd/output"
	"github.com/buildenv/javainst/internal/installation"
)

var _ output.Printer[InstallationResult] = (*InstallationPrinter)(nil)

// Roles an installation can play in a build.
const (
	RoleCurrent     = "current"
	RoleTest        = "test"
	RoleCompilation = "compilation"
)

// InstallationResult is the output structure for a single Java installation.
type InstallationResult struct {
	// Role describes what the build uses the installation for, if anything.
	Role string `json:"role,omitempty" yaml:"role,omitempty"`

	// Property is the build property the installation was hinted by, if any.
	Property string `json:"property,omitempty" yaml:"property,omitempty"`

	Home         string `json:"home"                   yaml:"home"`
	Version      string `json:"version"                yaml:"version"`
	DisplayName  string `json:"displayName"            yaml:"display_name"`
	Vendor       string `json:"vendor,omitempty"       yaml:"vendor,omitempty"`
	Current      bool   `json:"current"                yaml:"current"`
	ToolsArchive string `json:"toolsArchive,omitempty" yaml:"tools_archive,omitempty"`
}

// NewInstallationResult captures the state of inst for output.
func NewInstallationResult(role string, property string, inst *installation.Installation) InstallationResult {
	md := inst.Metadata()
	archive, _ := inst.ToolsArchive()

	return InstallationResult{
		Role:         role,
		Property:     property,
		Home:         inst.Home(),
		Version:      md.Version.String(),
		DisplayName:  inst.DisplayName(),
		Vendor:       md.Vendor,
		Current:      inst.IsCurrent(),
		ToolsArchive: archive,
	}
}

// InstallationPrinter handles text output for Java installations.
type InstallationPrinter struct {
	headerFunc output.WriteFunc[InstallationResult]
	footerFunc output.WriteFunc[InstallationResult]
}

func (p *InstallationPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *InstallationPrinter) SetHeader(fn output.WriteFunc[InstallationResult]) {
	p.headerFunc = fn
}

// Item writes the installation's name and home followed by its details.
func (p *InstallationPrinter) Item(w io.Writer, result InstallationResult) error {
	label := result.DisplayName
	if result.Role != "" {
		label = result.Role + ": " + label
	}

	home := result.Home
	if home == "" {
		home = "unknown"
	}

	_, _ = fmt.Fprintf(w, "  %s\n", label)
	_, _ = fmt.Fprintf(w, "    Home: %s\n", home)
	_, _ = fmt.Fprintf(w, "    Version: %s\n", result.Version)
	if result.Vendor != "" {
		_, _ = fmt.Fprintf(w, "    Vendor: %s\n", result.Vendor)
	}
	if result.Property != "" {
		_, _ = fmt.Fprintf(w, "    Property: %s\n", result.Property)
	}
	if result.ToolsArchive != "" {
		_, _ = fmt.Fprintf(w, "    Tools archive: %s\n", result.ToolsArchive)
	}

	return nil
}

func (p *InstallationPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *InstallationPrinter) SetFooter(fn output.WriteFunc[InstallationResult]) {
	p.footerFunc = fn
}
