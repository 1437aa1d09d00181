package installation

// ArchiveLocator finds the tools archive for an installation home.
// It returns false when the installation does not bundle one.
type ArchiveLocator func(home string) (string, bool)

// Option defines a functional option for configuring an Installation.
type Option func(*Options)

// Options contains optional configuration for an Installation.
type Options struct {
	locator ArchiveLocator
}

// NewOptions applies the given options over the defaults.
func NewOptions(opt ...Option) Options {
	o := Options{
		locator: LocateToolsArchive,
	}

	for _, fn := range opt {
		if fn == nil {
			continue
		}
		fn(&o)
	}

	return o
}

// WithArchiveLocator overrides how the tools archive is found.
func WithArchiveLocator(locator ArchiveLocator) Option {
	return func(o *Options) {
		if locator != nil {
			o.locator = locator
		}
	}
}
