// Package cmd implements the CLI command structure for selfish.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jhlee0409/selfish-pipeline/internal/config"
	"github.com/jhlee0409/selfish-pipeline/internal/installer"
	"github.com/jhlee0409/selfish-pipeline/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ExitError carries a process exit code. Silent errors have already been
// reported to the user and need no further message.
type ExitError struct {
	Code   int
	Err    error
	Silent bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitSilently reports a failure whose output has already been written.
func exitSilently(code int) error {
	return &ExitError{Code: code, Silent: true}
}

// streams holds the standard streams a command talks to.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func osStreams() streams {
	return streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// app is the state shared by every subcommand.
type app struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	logger *log.Logger
	io     streams
}

// Run executes the selfish CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, osStreams())
}

func run(ctx context.Context, args []string, s streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("selfish", flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.Usage = func() {
		printUsage(fs, s.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, s.out)
		return nil
	}
	if *showVersion {
		return versionCommand(s.out)
	}

	cfg := cws.Config
	logger := logging.NewFromConfig(s.err, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	a := &app{cws: cws, cfg: cfg, logger: logger, io: s}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, s.err)
		return &ExitError{Code: 1, Err: errors.New("missing command")}
	}
	subcommand, remaining := remaining[0], remaining[1:]

	switch subcommand {
	case "dag-validate":
		return a.dagValidateCommand(remaining)
	case "parallel-validate":
		return a.parallelValidateCommand(remaining)
	case "validate":
		return a.validateCommand(remaining)
	case "export":
		return a.exportCommand(remaining)
	case "install":
		return a.installCommand(ctx, remaining)
	case "config":
		return a.configCommand(remaining)
	case "version", "--version", "-v":
		return versionCommand(s.out)
	case "help", "--help", "-h":
		printUsage(fs, s.out)
		return nil
	default:
		fmt.Fprintf(s.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, s.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// parseSubcommand parses args for a subcommand. A -h/--help request prints
// the flag defaults and reports done.
func parseSubcommand(fs *flag.FlagSet, args []string) (done bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return true, &ExitError{Code: 1, Err: err, Silent: true}
	}
	return false, nil
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("selfish config", flag.ContinueOnError)
	fs.SetOutput(a.io.err)
	example := fs.Bool("example", false, "Print an example config file instead")
	if done, err := parseSubcommand(fs, args); done {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(a.io.out, config.ExampleConfig())
		return nil
	}

	width := 0
	for _, field := range config.Fields() {
		if len(field) > width {
			width = len(field)
		}
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(a.io.out, "%-*s = %-24q (%s)\n", width, field, a.cfg.Value(field), a.cws.Sources[field])
	}
	if len(a.cws.Files) > 0 {
		fmt.Fprintln(a.io.out)
		fmt.Fprintln(a.io.out, "Config files:")
		for _, f := range a.cws.Files {
			fmt.Fprintf(a.io.out, "  %s\n", f)
		}
	}
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "selfish version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Selfish - task list validators and plugin installer for the selfish pipeline")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  selfish [global options] <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  dag-validate <file>       Check task dependencies for cycles")
	fmt.Fprintln(w, "  parallel-validate <file>  Check parallel tasks for file overlaps within a phase")
	fmt.Fprintln(w, "  validate <file>           Run both validators")
	fmt.Fprintln(w, "  export <file>             Export the task list as JSON or YAML")
	fmt.Fprintln(w, "  install                   Install the plugin into Claude Code")
	fmt.Fprintln(w, "  config                    Show the effective configuration")
	fmt.Fprintln(w, "  version                   Show version information")
	fmt.Fprintln(w, "  help                      Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (json|yaml)")
	fmt.Fprintln(w, "  -out string")
	fmt.Fprintln(w, "        Write to file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Install Options:")
	fmt.Fprintln(w, "  -scope string")
	fmt.Fprintln(w, "        Install scope ("+strings.Join(installer.ScopeNames(), "|")+")")
	fmt.Fprintln(w, "  -yes")
	fmt.Fprintln(w, "        Use the configured scope without asking")
}
