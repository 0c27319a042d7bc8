package config

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadWithSources loads configuration from multiple sources in priority order
// and tracks the source of each value:
// 1. Defaults
// 2. User config file (~/.selfish/selfish.toml or OS-specific config dir)
// 3. Project config file (selfish.toml or .selfish.toml in current directory)
// 4. Environment variables
// 5. CLI flags
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. User config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, userConfigFile, cws.Sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cws.Files = append(cws.Files, userConfigFile)
	}

	// 3. Project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, projectConfigFile, cws.Sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cws.Files = append(cws.Files, projectConfigFile)
	}

	// 4. Environment
	loadFromEnvWithSources(cfg, cws.Sources)

	// 5. CLI flags
	if err := parseFlagsWithSources(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"claude_binary",
		"repo",
		"marketplace",
		"plugin",
		"scope",
		"parallel_marker",
		"export_format",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// loadConfigFileWithSources decodes the file over cfg. Only keys present in
// the file are overwritten; sources is updated for exactly those keys.
func loadConfigFileWithSources(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if sources == nil {
		return nil
	}
	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig normalizes values and rejects invalid ones.
func finalizeConfig(cfg *Config) error {
	cfg.ClaudeBinary = expandPath(cfg.ClaudeBinary)
	cfg.Scope = strings.ToLower(strings.TrimSpace(cfg.Scope))
	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.ClaudeBinary == "" {
		return fmt.Errorf("claude_binary must not be empty")
	}
	if strings.TrimSpace(cfg.ParallelMarker) == "" {
		return fmt.Errorf("parallel_marker must not be empty")
	}
	switch cfg.ExportFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid export_format %q (must be json or yaml)", cfg.ExportFormat)
	}
	return nil
}
