package installer

import (
	"fmt"
	"strings"
)

// Scope is a settings file the host CLI can record the plugin in.
type Scope struct {
	Key      string // menu key
	Name     string // value passed to --scope
	Label    string
	Settings string // settings file the host CLI writes
}

// Scopes lists the install scopes in menu order. The first is the default.
var Scopes = []Scope{
	{Key: "1", Name: "user", Label: "User (all of your projects)", Settings: "~/.claude/settings.json"},
	{Key: "2", Name: "project", Label: "Project (shared with the team, committed to git)", Settings: ".claude/settings.json"},
	{Key: "3", Name: "local", Label: "Local (this project only, gitignored)", Settings: ".claude/settings.local.json"},
}

// DefaultScope returns the scope used when the user just presses enter.
func DefaultScope() Scope {
	return Scopes[0]
}

// ScopeByKey returns the scope for a menu key. An empty key selects the
// default scope.
func ScopeByKey(key string) (Scope, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultScope(), true
	}
	for _, s := range Scopes {
		if s.Key == key {
			return s, true
		}
	}
	return Scope{}, false
}

// ScopeByName parses a scope name such as "project".
func ScopeByName(name string) (Scope, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Scopes {
		if s.Name == name {
			return s, nil
		}
	}
	return Scope{}, fmt.Errorf("invalid scope: %q (must be one of %s)", name, strings.Join(ScopeNames(), ", "))
}

// ScopeNames returns the scope names in menu order.
func ScopeNames() []string {
	names := make([]string, 0, len(Scopes))
	for _, s := range Scopes {
		names = append(names, s.Name)
	}
	return names
}
