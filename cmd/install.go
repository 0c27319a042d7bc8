package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/jhlee0409/selfish-pipeline/internal/installer"
	"github.com/jhlee0409/selfish-pipeline/internal/ui"
)

// newRunner builds the subprocess runner used by install.
var newRunner = func(s streams) installer.Runner {
	return installer.ExecRunner{Stdin: s.in, Stdout: s.out, Stderr: s.err}
}

// installCommand registers the marketplace and installs the plugin.
func (a *app) installCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("selfish install", flag.ContinueOnError)
	fs.SetOutput(a.io.err)
	scopeStr := fs.String("scope", "", "Install scope ("+strings.Join(installer.ScopeNames(), "|")+")")
	yes := fs.Bool("yes", false, "Use the configured scope without asking")
	if done, err := parseSubcommand(fs, args); done {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	inst := installer.New(installer.Options{
		Binary:    a.cfg.ClaudeBinary,
		Repo:      a.cfg.Repo,
		PluginRef: a.cfg.PluginRef(),
	}, newRunner(a.io), a.logger, a.io.out)

	inst.PrintHeader()
	if err := inst.CheckHost(ctx); err != nil {
		return err
	}

	scope, err := a.resolveScope(ctx, *scopeStr, *yes)
	if err != nil {
		return err
	}
	a.logger.Debug("install scope", "scope", scope.Name, "settings", scope.Settings)

	return inst.Install(ctx, scope)
}

// resolveScope uses --scope when given, the configured scope with --yes, and
// asks the user otherwise.
func (a *app) resolveScope(ctx context.Context, flagValue string, yes bool) (installer.Scope, error) {
	if flagValue != "" {
		return installer.ScopeByName(flagValue)
	}
	configured, err := installer.ScopeByName(a.cfg.Scope)
	if err != nil {
		return installer.Scope{}, err
	}
	if yes {
		return configured, nil
	}

	options := make([]ui.Option, 0, len(installer.Scopes))
	def := 0
	for i, s := range installer.Scopes {
		options = append(options, ui.Option{Key: s.Key, Label: s.Label, Detail: s.Settings})
		if s.Name == configured.Name {
			def = i
		}
	}

	idx, err := ui.Choose(ctx, a.io.in, a.io.out, "Choose the install scope:", options, def)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			return installer.Scope{}, errors.New("installation cancelled")
		}
		return installer.Scope{}, err
	}
	fmt.Fprintln(a.io.out)
	return installer.Scopes[idx], nil
}
