// Package properties resolves named properties (such as 'java7Home') from an ordered set of stores.
package properties

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode"
)

var (
	_ Source = (*MapSource)(nil)
	_ Source = (*EnvSource)(nil)
)

// Source is a store of named string properties.
type Source interface {
	// Name identifies the store in logs and messages, e.g. 'build' or 'environment'.
	Name() string

	// Lookup returns the value for key, and whether it is present.
	Lookup(key string) (string, bool)
}

// Resolver checks its sources in order and returns the first present value.
type Resolver struct {
	sources []Source
}

// Value is a resolved property together with the store it came from.
type Value struct {
	Key    string
	Value  string
	Source string
}

// NewResolver returns a Resolver that consults the given sources in order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: slices.DeleteFunc(slices.Clone(sources), func(s Source) bool { return s == nil })}
}

// Resolve returns the first present, non-blank value for key.
func (r *Resolver) Resolve(key string) (Value, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Value{}, false
	}

	for _, s := range r.sources {
		v, ok := s.Lookup(key)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		return Value{Key: key, Value: v, Source: s.Name()}, true
	}

	return Value{}, false
}

// MapSource is an in-memory property store, e.g. build properties from the config file and command line.
type MapSource struct {
	name  string
	props map[string]string
}

// NewMapSource returns a store named name holding a copy of props.
func NewMapSource(name string, props map[string]string) *MapSource {
	return &MapSource{name: name, props: maps.Clone(props)}
}

func (m *MapSource) Name() string {
	return m.name
}

func (m *MapSource) Lookup(key string) (string, bool) {
	v, ok := m.props[key]
	return v, ok
}

// EnvSource looks properties up in the process environment.
// The exact key is tried first, then its upper snake case form ('java7Home' becomes 'JAVA7_HOME').
type EnvSource struct {
	lookup func(string) (string, bool)
}

// NewEnvSource returns a store backed by os.LookupEnv.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

func (e *EnvSource) Name() string {
	return "environment"
}

func (e *EnvSource) Lookup(key string) (string, bool) {
	if v, ok := e.lookup(key); ok {
		return v, true
	}

	if alt := EnvVarName(key); alt != key {
		return e.lookup(alt)
	}

	return "", false
}

// EnvVarName converts a camel case property name to its environment variable form.
func EnvVarName(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_' {
			b.WriteRune('_')
		}
		if r == '-' || r == '.' {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ParseAssignments converts 'key=value' pairs (as given on the command line) into a map.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid property '%s', expected key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
