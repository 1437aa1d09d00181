package policy

import "strings"

// Option defines a functional option for configuring a Validator.
type Option func(*Options) error

// Options contains the expected installations.
// An empty display name disables the corresponding check.
type Options struct {
	compilationDisplayName string
	runtimeDisplayName     string
}

// NewOptions applies the given options.
func NewOptions(opt ...Option) (Options, error) {
	o := Options{}

	for _, fn := range opt {
		if fn == nil {
			continue
		}
		if err := fn(&o); err != nil {
			return Options{}, err
		}
	}

	return o, nil
}

// WithCompilationDisplayName sets the display name the primary hinted installation must have, e.g. 'Oracle JDK 7'.
func WithCompilationDisplayName(name string) Option {
	return func(o *Options) error {
		o.compilationDisplayName = strings.TrimSpace(name)
		return nil
	}
}

// WithRuntimeDisplayName sets the display name the current installation must have, e.g. 'Oracle JDK 8'.
func WithRuntimeDisplayName(name string) Option {
	return func(o *Options) error {
		o.runtimeDisplayName = strings.TrimSpace(name)
		return nil
	}
}
