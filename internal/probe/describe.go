package probe

import (
	"bufio"
	"bytes"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/buildenv/javainst/internal/files"
	"github.com/buildenv/javainst/internal/installation"
	"github.com/buildenv/javainst/internal/version"
)

// System property names read from a probed JVM.
const (
	PropJavaVersion          = "java.version"
	PropJavaVendor           = "java.vendor"
	PropRuntimeName          = "java.runtime.name"
	PropVMName               = "java.vm.name"
	PropSpecificationVersion = "java.specification.version"
)

// UnknownDisplayName is used for installations whose vendor or version could not be determined.
const UnknownDisplayName = "Unknown JVM"

// SystemProperties are the JVM system properties reported by a probed installation.
type SystemProperties map[string]string

// ParseSystemProperties reads the output of 'java -XshowSettings:properties -version'.
// Only 'key = value' lines are kept; continuation lines of multi-valued properties are ignored.
func ParseSystemProperties(output []byte) SystemProperties {
	props := SystemProperties{}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "    ") {
			continue
		}
		k, v, ok := strings.Cut(strings.TrimSpace(line), " = ")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" || strings.ContainsAny(k, " \t") {
			continue
		}
		props[k] = strings.TrimSpace(v)
	}

	return props
}

// Version returns the Java version from the specification version, falling back to java.version.
func (p SystemProperties) Version() (version.Version, error) {
	if v, err := version.Parse(p[PropSpecificationVersion]); err == nil {
		return v, nil
	}
	return version.Parse(p[PropJavaVersion])
}

// Vendor normalizes the vendor of the runtime, e.g. 'Oracle' or 'OpenJDK'.
func (p SystemProperties) Vendor() string {
	vendor := strings.ToLower(p[PropJavaVendor])
	name := strings.ToLower(p[PropRuntimeName] + " " + p[PropVMName])
	openJDK := strings.Contains(name, "openjdk")

	switch {
	case strings.Contains(vendor, "azul"):
		return "Azul Zulu"
	case strings.Contains(vendor, "ibm"), strings.Contains(vendor, "international business machines"):
		return "IBM"
	case strings.Contains(vendor, "amazon"):
		return "Amazon Corretto"
	case strings.Contains(vendor, "adoptium"):
		return "Eclipse Temurin"
	case strings.Contains(vendor, "adoptopenjdk"):
		return "AdoptOpenJDK"
	case strings.Contains(vendor, "apple"):
		return "Apple"
	case openJDK:
		return "OpenJDK"
	case strings.Contains(vendor, "oracle"), strings.Contains(vendor, "sun microsystems"):
		return "Oracle"
	case strings.TrimSpace(p[PropJavaVendor]) != "":
		return strings.TrimSpace(p[PropJavaVendor])
	default:
		return ""
	}
}

// Describe derives installation metadata from the system properties of the JVM at home.
// It returns an error when the Java version cannot be determined.
func Describe(home string, props SystemProperties) (installation.Metadata, error) {
	v, err := props.Version()
	if err != nil {
		return installation.Metadata{}, err
	}

	vendor := props.Vendor()
	if vendor == "" {
		vendor = "Unknown"
	}

	return installation.Metadata{
		Version:     v,
		DisplayName: displayName(vendor, isJDK(home), v),
		Vendor:      vendor,
		Name:        props[PropRuntimeName],
	}, nil
}

// displayName renders e.g. 'Oracle JDK 7', 'OpenJDK 8' or 'OpenJDK JRE 8'.
func displayName(vendor string, jdk bool, v version.Version) string {
	major := strconv.Itoa(v.Major())

	switch {
	case !jdk:
		return vendor + " JRE " + major
	case vendor == "OpenJDK":
		return vendor + " " + major
	default:
		return vendor + " JDK " + major
	}
}

// isJDK reports whether the installation ships a compiler.
func isJDK(home string) bool {
	return files.IsExecutableFile(executable(home, "javac"))
}

// executable returns the path of a launcher in the installation's bin directory.
func executable(home string, name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(home, "bin", name)
}
