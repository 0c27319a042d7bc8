// Package installer registers the plugin marketplace with the Claude Code CLI
// and installs the plugin into a chosen settings scope.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jhlee0409/selfish-pipeline/internal/logging"
)

// ErrHostMissing is returned when the host CLI cannot be executed.
var ErrHostMissing = errors.New("claude code CLI is not installed")

// HostURL is where users get the host CLI.
const HostURL = "https://claude.ai/code"

// Options names the host binary and what to install.
type Options struct {
	Binary    string
	Repo      string // marketplace source, e.g. "owner/repo"
	PluginRef string // plugin@marketplace
}

// StepError reports a failed install step together with the commands the
// user can run by hand.
type StepError struct {
	Step   string
	Err    error
	Manual [][]string
}

func (e *StepError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed: %v", e.Step, e.Err)
	if len(e.Manual) > 0 {
		b.WriteString("\nRun manually:")
		for _, c := range e.Manual {
			b.WriteString("\n  ")
			b.WriteString(strings.Join(c, " "))
		}
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Installer drives the host CLI.
type Installer struct {
	opts   Options
	runner Runner
	logger *log.Logger
	out    io.Writer
}

// New creates an installer. Progress text goes to out; a nil logger discards.
func New(opts Options, runner Runner, logger *log.Logger, out io.Writer) *Installer {
	if out == nil {
		out = io.Discard
	}
	return &Installer{
		opts:   opts,
		runner: runner,
		logger: logging.OrDiscard(logger),
		out:    out,
	}
}

// MarketplaceCommand returns the command that registers the marketplace.
func (i *Installer) MarketplaceCommand() []string {
	return []string{i.opts.Binary, "plugin", "marketplace", "add", i.opts.Repo}
}

// InstallCommand returns the command that installs the plugin into scope.
func (i *Installer) InstallCommand(scope Scope) []string {
	return []string{i.opts.Binary, "plugin", "install", i.opts.PluginRef, "--scope", scope.Name}
}

// PrintHeader writes the installer banner.
func (i *Installer) PrintHeader() {
	title := "Selfish Pipeline: Claude Code Plugin Installer"
	fmt.Fprintf(i.out, "\n  %s\n  %s\n\n", title, strings.Repeat("=", len(title)))
}

// CheckHost verifies the host CLI runs.
func (i *Installer) CheckHost(ctx context.Context) error {
	if err := i.runner.Quiet(ctx, i.opts.Binary, "--version"); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		i.logger.Debug("host check failed", "binary", i.opts.Binary, "err", err)
		return fmt.Errorf("%w (install it from %s)", ErrHostMissing, HostURL)
	}
	i.logger.Debug("host CLI found", "binary", i.opts.Binary)
	return nil
}

// Install registers the marketplace and installs the plugin into scope.
// A failed marketplace registration is logged and installation continues,
// since the marketplace may already be known to the host.
func (i *Installer) Install(ctx context.Context, scope Scope) error {
	fmt.Fprintf(i.out, "  Installing with %s scope...\n\n", scope.Label)

	fmt.Fprintln(i.out, "  [1/2] Registering marketplace...")
	market := i.MarketplaceCommand()
	i.logger.Info("registering marketplace", "repo", i.opts.Repo)
	if err := i.runner.Run(ctx, market[0], market[1:]...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		i.logger.Warn("marketplace registration failed, continuing", "err", err)
	}

	fmt.Fprintf(i.out, "  [2/2] Installing plugin (--scope %s)...\n", scope.Name)
	install := i.InstallCommand(scope)
	i.logger.Info("installing plugin", "plugin", i.opts.PluginRef, "scope", scope.Name)
	if err := i.runner.Run(ctx, install[0], install[1:]...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &StepError{
			Step:   "plugin install",
			Err:    err,
			Manual: [][]string{market, install},
		}
	}

	fmt.Fprintln(i.out)
	fmt.Fprintln(i.out, "  Installed.")
	fmt.Fprintln(i.out)
	fmt.Fprintln(i.out, "  Next steps:")
	fmt.Fprintln(i.out, "    /selfish:init                  generate project settings")
	fmt.Fprintln(i.out, "    /selfish:auto \"feature ...\"    run the pipeline")
	fmt.Fprintln(i.out)
	return nil
}
