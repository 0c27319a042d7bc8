package config

import (
	"os"
	"strings"
)

// loadFromEnvWithSources loads environment variables and updates source tracking.
// If sources is nil, no tracking is done.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) {
	setString := func(field string, target *string, keys ...string) {
		for _, key := range keys {
			if v := os.Getenv(key); v != "" {
				*target = v
				if sources != nil {
					sources[field] = SourceEnv
				}
			}
		}
	}
	setBool := func(field string, target *bool, key string) {
		if v := os.Getenv(key); v != "" {
			*target = boolFromString(v)
			if sources != nil {
				sources[field] = SourceEnv
			}
		}
	}

	// CLAUDE_BIN is shared with other tooling; SELFISH_CLAUDE_BIN wins when both are set.
	setString("claude_binary", &cfg.ClaudeBinary, "CLAUDE_BIN", "SELFISH_CLAUDE_BIN")
	setString("repo", &cfg.Repo, "SELFISH_REPO")
	setString("marketplace", &cfg.Marketplace, "SELFISH_MARKETPLACE")
	setString("plugin", &cfg.Plugin, "SELFISH_PLUGIN")
	setString("scope", &cfg.Scope, "SELFISH_SCOPE")
	setString("parallel_marker", &cfg.ParallelMarker, "SELFISH_PARALLEL_MARKER")
	setString("export_format", &cfg.ExportFormat, "SELFISH_EXPORT_FORMAT")

	setString("log_level", &cfg.LogLevel, "SELFISH_LOG_LEVEL")
	setString("log_format", &cfg.LogFormat, "SELFISH_LOG_FORMAT")
	setBool("log_timestamps", &cfg.LogTimestamps, "SELFISH_LOG_TIMESTAMPS")
	setBool("log_caller", &cfg.LogCaller, "SELFISH_LOG_CALLER")
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
