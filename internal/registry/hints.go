package registry

import (
	"github.com/buildenv/javainst/internal/properties"
)

// Hint is an installation home supplied through a named property.
type Hint struct {
	// Property is the name of the property that supplied the home, e.g. 'java7Home'.
	Property string

	// Home is the installation directory.
	Home string

	// Source names the property store the value came from, e.g. 'build' or 'environment'.
	Source string
}

// Hints are the resolved installation hints a Registry is built from.
type Hints struct {
	// PrimaryProperty names the first compilation property, which the cache policy checks.
	PrimaryProperty string

	// Compilation holds the resolved compilation hints, in property order.
	Compilation []Hint

	// Test is the dedicated test installation hint, if any.
	Test *Hint
}

// PrimarySet reports whether the primary compilation property was supplied.
func (h Hints) PrimarySet() bool {
	_, ok := h.Primary()
	return ok
}

// Primary returns the hint supplied through the primary compilation property.
func (h Hints) Primary() (Hint, bool) {
	if h.PrimaryProperty == "" {
		return Hint{}, false
	}
	for _, c := range h.Compilation {
		if c.Property == h.PrimaryProperty {
			return c, true
		}
	}
	return Hint{}, false
}

// ResolveHints looks up each compilation property and the test property using resolver.
// Properties that are not present are skipped.
func ResolveHints(resolver *properties.Resolver, compilationProperties []string, testProperty string) Hints {
	hints := Hints{}
	if len(compilationProperties) > 0 {
		hints.PrimaryProperty = compilationProperties[0]
	}

	for _, name := range compilationProperties {
		if v, ok := resolver.Resolve(name); ok {
			hints.Compilation = append(hints.Compilation, Hint{Property: v.Key, Home: v.Value, Source: v.Source})
		}
	}

	if testProperty != "" {
		if v, ok := resolver.Resolve(testProperty); ok {
			hints.Test = &Hint{Property: v.Key, Home: v.Value, Source: v.Source}
		}
	}

	return hints
}
