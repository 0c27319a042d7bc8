package config

import "strconv"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultClaudeBinary   = "claude"
	DefaultRepo           = "jhlee0409/selfish-pipeline"
	DefaultMarketplace    = "selfish-pipeline"
	DefaultPlugin         = "selfish"
	DefaultScope          = "user"
	DefaultParallelMarker = "[P]"
	DefaultExportFormat   = "json"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for selfish.
type Config struct {
	// Host CLI
	ClaudeBinary string `toml:"claude_binary"`

	// Plugin coordinates used by the installer
	Repo        string `toml:"repo"`
	Marketplace string `toml:"marketplace"`
	Plugin      string `toml:"plugin"`
	Scope       string `toml:"scope"`

	// Task list grammar
	ParallelMarker string `toml:"parallel_marker"`

	// Export
	ExportFormat string `toml:"export_format"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// PluginRef returns the plugin reference passed to the host CLI installer,
// e.g. "selfish@selfish-pipeline".
func (c *Config) PluginRef() string {
	return c.Plugin + "@" + c.Marketplace
}

// Value returns the string form of the field with the given toml key, or ""
// for an unknown key.
func (c *Config) Value(field string) string {
	switch field {
	case "claude_binary":
		return c.ClaudeBinary
	case "repo":
		return c.Repo
	case "marketplace":
		return c.Marketplace
	case "plugin":
		return c.Plugin
	case "scope":
		return c.Scope
	case "parallel_marker":
		return c.ParallelMarker
	case "export_format":
		return c.ExportFormat
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	}
	return ""
}
