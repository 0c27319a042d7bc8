package config

import (
	"flag"
)

// parseFlagsWithSources defines the global flags on fs, parses args, and
// records SourceFlag for every flag the user set explicitly.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}

	// flag name -> config field
	fields := map[string]string{
		"claude-bin":     "claude_binary",
		"marker":         "parallel_marker",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.StringVar(&cfg.ClaudeBinary, "claude-bin", cfg.ClaudeBinary, "Host CLI binary used by install")
	fs.StringVar(&cfg.ParallelMarker, "marker", cfg.ParallelMarker, "Marker that tags a task as parallel-safe")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := fields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
