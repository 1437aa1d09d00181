// Package version models Java language versions as reported by installations
// (e.g. "1.7", "1.8", "11") and orders them by feature release.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a Java feature release, such as Java 7 or Java 17.
// The zero value is an unknown version and orders before every known version.
type Version struct {
	major int
}

// Of returns the Version for the given feature release number.
func Of(major int) Version {
	if major < 0 {
		major = 0
	}
	return Version{major: major}
}

// Parse converts a version label into a Version.
// It accepts the legacy "1.x" scheme ("1.7", "1.8.0_292"), the modern scheme ("9", "11.0.2", "17-ea"),
// and bare numbers; surrounding whitespace and quotes are ignored.
func Parse(s string) (Version, error) {
	raw := s
	s = strings.Trim(strings.TrimSpace(s), `"`)
	if s == "" {
		return Version{}, fmt.Errorf("version cannot be empty")
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return Version{}, fmt.Errorf("invalid Java version '%s'", raw)
	}

	first, err := leadingNumber(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid Java version '%s': %w", raw, err)
	}

	if first == 1 && len(parts) > 1 {
		second, err := leadingNumber(parts[1])
		if err != nil {
			return Version{}, fmt.Errorf("invalid Java version '%s': %w", raw, err)
		}
		first = second
	}

	if first < 1 {
		return Version{}, fmt.Errorf("invalid Java version '%s'", raw)
	}

	return Version{major: first}, nil
}

// MustParse is like Parse but panics when the label cannot be parsed.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Major returns the feature release number, or 0 when unknown.
func (v Version) Major() int {
	return v.major
}

// IsKnown reports whether the version was parsed from a real label.
func (v Version) IsKnown() bool {
	return v.major > 0
}

// Compare returns -1, 0 or +1 depending on whether v orders before, equal to, or after o.
func (v Version) Compare(o Version) int {
	switch {
	case v.major < o.major:
		return -1
	case v.major > o.major:
		return 1
	default:
		return 0
	}
}

// AtMost reports whether v is older than or equal to o.
func (v Version) AtMost(o Version) bool {
	return v.Compare(o) <= 0
}

// String renders the version the way the JVM names it: "1.x" up to Java 8, the bare number afterwards.
func (v Version) String() string {
	switch {
	case v.major == 0:
		return "unknown"
	case v.major < 9:
		return "1." + strconv.Itoa(v.major)
	default:
		return strconv.Itoa(v.major)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(b []byte) error {
	if string(b) == "unknown" {
		*v = Version{}
		return nil
	}

	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func leadingNumber(s string) (int, error) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("'%s' does not start with a number", s)
	}
	return strconv.Atoi(s[:end])
}
