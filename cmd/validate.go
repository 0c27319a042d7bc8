package cmd

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jhlee0409/selfish-pipeline/internal/dag"
	"github.com/jhlee0409/selfish-pipeline/internal/parallel"
	"github.com/jhlee0409/selfish-pipeline/internal/tasks"
)

// validator turns a parsed task list into verdicts.
type validator func(doc *tasks.Document) []tasks.Verdict

func (a *app) dagValidateCommand(args []string) error {
	return a.runValidator("selfish dag-validate", args, func(doc *tasks.Document) []tasks.Verdict {
		return []tasks.Verdict{dag.Validate(doc, a.logger)}
	})
}

func (a *app) parallelValidateCommand(args []string) error {
	return a.runValidator("selfish parallel-validate", args, func(doc *tasks.Document) []tasks.Verdict {
		return []tasks.Verdict{parallel.Validate(doc, a.logger)}
	})
}

// validateCommand reads the file once and runs both validators.
func (a *app) validateCommand(args []string) error {
	return a.runValidator("selfish validate", args, func(doc *tasks.Document) []tasks.Verdict {
		return []tasks.Verdict{
			dag.Validate(doc, a.logger),
			parallel.Validate(doc, a.logger),
		}
	})
}

// runValidator handles the argument and file checks shared by the
// validators, prints every verdict to stdout, and fails if any verdict does.
func (a *app) runValidator(prog string, args []string, check validator) error {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(a.io.err)
	fs.Usage = func() {
		fmt.Fprintf(a.io.err, "Usage: %s <tasks_file_path>\n", prog)
	}
	if done, err := parseSubcommand(fs, args); done {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(a.io.err, "Usage: %s <tasks_file_path>\n", prog)
		return exitSilently(1)
	}

	doc, err := a.readTasks(fs.Arg(0))
	if err != nil {
		return err
	}

	code := 0
	for _, v := range check(doc) {
		if _, err := v.WriteTo(a.io.out); err != nil {
			return fmt.Errorf("write verdict: %w", err)
		}
		if v.ExitCode() > code {
			code = v.ExitCode()
		}
	}
	if code != 0 {
		return exitSilently(code)
	}
	return nil
}

// readTasks parses the task list at path with the configured marker. An
// unreadable file is reported on stderr.
func (a *app) readTasks(path string) (*tasks.Document, error) {
	doc, err := tasks.ReadFile(path, tasks.Options{ParallelMarker: a.cfg.ParallelMarker})
	if err != nil {
		if errors.Is(err, tasks.ErrUnreadable) {
			a.logger.Debug("read task list", "err", err)
			fmt.Fprintf(a.io.err, "Error: file not found: %s\n", path)
			return nil, exitSilently(1)
		}
		return nil, err
	}
	a.logger.Debug("parsed task list", "path", path, "lines", len(doc.Lines), "tasks", len(doc.TaskLines()))
	return doc, nil
}
