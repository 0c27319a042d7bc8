package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# selfish configuration file
# Values can be overridden by environment variables or CLI flags.

# Host CLI binary (supports ~ and $VAR expansion)
claude_binary = "claude"

# Plugin coordinates used by "selfish install"
repo = "jhlee0409/selfish-pipeline"
marketplace = "selfish-pipeline"
plugin = "selfish"

# Default install scope: user, project, or local
scope = "user"

# Marker that tags a task line as parallel-safe
parallel_marker = "[P]"

# Output format for "selfish export": json or yaml
export_format = "json"

# Logging (written to stderr)
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
