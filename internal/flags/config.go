package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarConfigFile    = "JAVAINST_CONFIG_FILE"
	EnvVarLogPath       = "JAVAINST_LOG_PATH"
	EnvVarLogLevel      = "JAVAINST_LOG_LEVEL"
	EnvVarProbeCacheDir = "JAVAINST_PROBE_CACHE_DIR"

	// Defaults
	DefaultConfigFile    = ".javainst.toml"
	DefaultLogPath       = ""
	DefaultLogLevel      = "info"
	DefaultProbeCacheDir = ""

	// Flag names
	FlagNameConfigFile        = "config-file"
	FlagNameLogPath           = "log-path"
	FlagNameLogLevel          = "log-level"
	FlagNameProperty          = "property"
	FlagNameProbeCacheDir     = "probe-cache-dir"
	FlagNameNoProbeCache      = "no-probe-cache"
	FlagNameRefreshProbeCache = "refresh-probe-cache"
)

var (
	ConfigFile        string
	LogPath           string
	LogLevel          string
	Properties        []string
	ProbeCacheDir     string
	NoProbeCache      bool
	RefreshProbeCache bool
)

func InitFlags(fs *pflag.FlagSet) {
	initConfigFile(fs)
	initLogger(fs)
	initProperties(fs)
	initProbeCache(fs)
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		ConfigFile = envOrDefault(EnvVarConfigFile, DefaultConfigFile)
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to config file")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		LogPath = envOrDefault(EnvVarLogPath, DefaultLogPath)
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		LogLevel = strings.ToLower(envOrDefault(EnvVarLogLevel, DefaultLogLevel))
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for javainst logs")
}

func initProperties(fs *pflag.FlagSet) {
	fs.StringArrayVarP(
		&Properties,
		FlagNameProperty,
		"P",
		Properties,
		"build property in key=value form, takes precedence over the config file and environment (can be repeated)",
	)
}

func initProbeCache(fs *pflag.FlagSet) {
	if ProbeCacheDir == "" {
		ProbeCacheDir = envOrDefault(EnvVarProbeCacheDir, DefaultProbeCacheDir)
	}
	fs.StringVar(&ProbeCacheDir, FlagNameProbeCacheDir, ProbeCacheDir, "directory used to cache probe results")
	fs.BoolVar(&NoProbeCache, FlagNameNoProbeCache, NoProbeCache, "disable the probe result cache")
	fs.BoolVar(&RefreshProbeCache, FlagNameRefreshProbeCache, RefreshProbeCache, "probe again and overwrite cached results")
}

func envOrDefault(name string, fallback string) string {
	if env := strings.TrimSpace(os.Getenv(name)); env != "" {
		return env
	}
	return fallback
}
