// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.selfish/selfish.toml or OS-specific config directory)
// 3. Project config file (selfish.toml or .selfish.toml in the working directory)
// 4. Environment variables (SELFISH_*, plus CLAUDE_BIN)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.selfish/selfish.toml (preferred)
// - Windows: %APPDATA%\selfish\selfish.toml
// - macOS: ~/Library/Application Support/selfish/selfish.toml
// - Linux/BSD: $XDG_CONFIG_HOME/selfish/selfish.toml or ~/.config/selfish/selfish.toml
//
// Project-level config locations (overrides user config):
// - ./selfish.toml (preferred)
// - ./.selfish.toml
package config
