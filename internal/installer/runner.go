package installer

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner runs host CLI commands.
type Runner interface {
	// Run executes the command with the runner's stdio attached.
	Run(ctx context.Context, name string, args ...string) error
	// Quiet executes the command with its output discarded.
	Quiet(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands as subprocesses.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Dir    string
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return nil
}

// Quiet implements Runner.
func (r ExecRunner) Quiet(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return nil
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
