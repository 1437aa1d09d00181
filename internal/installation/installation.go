package installation

import (
	"fmt"
	"path/filepath"
	"sync"

	apperrors "github.com/buildenv/javainst/internal/errors"
	"github.com/buildenv/javainst/internal/version"
)

// Metadata is what a probe learns about an installation.
type Metadata struct {
	// Version is the Java feature release, e.g. 1.8.
	Version version.Version `json:"version" yaml:"version"`

	// DisplayName is the vendor, kind and release, e.g. 'Oracle JDK 7'.
	DisplayName string `json:"displayName" yaml:"displayName"`

	// Vendor is the normalized vendor name, e.g. 'Oracle' or 'OpenJDK'.
	Vendor string `json:"vendor,omitempty" yaml:"vendor,omitempty"`

	// Name is the name reported by the runtime itself, e.g. 'Java(TM) SE Runtime Environment'.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Installation describes one Java installation found at a fixed location.
// The location is set on creation and never changes.
// Metadata can be applied once, by a probe.
// NewInstallation should be used to create instances of Installation.
type Installation struct {
	current bool
	home    string

	mu         sync.RWMutex
	metadata   Metadata
	configured bool

	locate      ArchiveLocator
	archiveOnce sync.Once
	archive     string
	hasArchive  bool
}

// NewInstallation creates an installation for the given home directory without probing it.
// The home is made absolute when possible; an empty home marks an installation whose location is unknown.
func NewInstallation(current bool, home string, opt ...Option) *Installation {
	opts := NewOptions(opt...)

	if home != "" {
		if abs, err := filepath.Abs(home); err == nil {
			home = abs
		}
		home = filepath.Clean(home)
	}

	return &Installation{
		current: current,
		home:    home,
		locate:  opts.locator,
	}
}

// IsCurrent reports whether this is the installation the process is running under.
func (i *Installation) IsCurrent() bool {
	return i.current
}

// Home returns the installation directory.
func (i *Installation) Home() string {
	return i.home
}

// SetHome always fails: the location of an installation cannot be changed.
func (i *Installation) SetHome(string) error {
	return fmt.Errorf("%w: home of installation '%s' cannot be changed", apperrors.ErrUnsupportedMutation, i.home)
}

// Configure applies probed metadata. It may only be called once.
func (i *Installation) Configure(md Metadata) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.configured {
		return fmt.Errorf(
			"%w: installation '%s' is already described as '%s'",
			apperrors.ErrUnsupportedMutation,
			i.home,
			i.metadata.DisplayName,
		)
	}

	i.metadata = md
	i.configured = true

	return nil
}

// IsConfigured reports whether a probe has populated the metadata.
func (i *Installation) IsConfigured() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.configured
}

// Metadata returns the probed metadata (zero value when not yet probed).
func (i *Installation) Metadata() Metadata {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.metadata
}

// Version returns the probed Java version.
func (i *Installation) Version() version.Version {
	return i.Metadata().Version
}

// DisplayName returns the probed display name, e.g. 'Oracle JDK 8'.
func (i *Installation) DisplayName() string {
	return i.Metadata().DisplayName
}

// ToolsArchive returns the location of the tools archive (tools.jar) bundled with older JDKs.
// The lookup runs at most once per installation; false means there is no archive.
func (i *Installation) ToolsArchive() (string, bool) {
	i.archiveOnce.Do(func() {
		if i.home == "" {
			return
		}
		i.archive, i.hasArchive = i.locate(i.home)
	})

	return i.archive, i.hasArchive
}

// String renders the installation as '<display name> (<home>)'.
func (i *Installation) String() string {
	name := i.DisplayName()
	if name == "" {
		name = "Unknown installation"
	}
	home := i.home
	if home == "" {
		home = "unknown location"
	}
	return fmt.Sprintf("%s (%s)", name, home)
}
