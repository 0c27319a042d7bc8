// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhlee0409/selfish-pipeline/internal/installer"
)

// isolate keeps user and project config files out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"CLAUDE_BIN", "SELFISH_CLAUDE_BIN", "SELFISH_REPO", "SELFISH_MARKETPLACE",
		"SELFISH_PLUGIN", "SELFISH_SCOPE", "SELFISH_PARALLEL_MARKER",
		"SELFISH_EXPORT_FORMAT", "SELFISH_LOG_LEVEL", "SELFISH_LOG_FORMAT",
		"SELFISH_LOG_TIMESTAMPS", "SELFISH_LOG_CALLER",
	} {
		t.Setenv(key, "")
	}
	work := t.TempDir()
	chdir(t, work)
	return work
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, streams{in: strings.NewReader(stdin), out: &out, err: &errOut})
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeTasks(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "tasks.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func TestRun(t *testing.T) {
	isolate(t)

	t.Run("help flag", func(t *testing.T) {
		r := runCLI(t, "", "--help")
		if r.err != nil || !strings.Contains(r.stdout, "dag-validate <file>") {
			t.Errorf("got err=%v stdout=%q", r.err, r.stdout)
		}
	})

	t.Run("help command", func(t *testing.T) {
		r := runCLI(t, "", "help")
		if r.err != nil || !strings.Contains(r.stdout, "Install Options:") {
			t.Errorf("got err=%v stdout=%q", r.err, r.stdout)
		}
	})

	t.Run("version", func(t *testing.T) {
		for _, arg := range []string{"--version", "-v", "version"} {
			r := runCLI(t, "", arg)
			if r.err != nil || r.stdout != "selfish version dev\n" {
				t.Errorf("%s: got err=%v stdout=%q", arg, r.err, r.stdout)
			}
		}
	})

	t.Run("missing command", func(t *testing.T) {
		r := runCLI(t, "")
		if exitCode(r.err) != 1 {
			t.Errorf("expected exit 1, got %v", r.err)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		r := runCLI(t, "", "unknown-command")
		if r.err == nil || !strings.Contains(r.err.Error(), "unknown command") {
			t.Errorf("expected unknown command error, got %v", r.err)
		}
	})
}

func TestDagValidateCommand(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name       string
		content    string
		wantStdout string
		wantCode   int
	}{
		{
			name:       "no tasks",
			content:    "# Nothing here\n",
			wantStdout: "Valid: no tasks found, nothing to validate\n",
		},
		{
			name:       "acyclic",
			content:    "- [ ] T001 a\n- [ ] T002 b depends: [T001]\n- [x] T003 c depends: [T001, T002]\n",
			wantStdout: "Valid: 3 tasks, no circular dependencies\n",
		},
		{
			name:       "two cycle",
			content:    "- [ ] T001 a depends: [T002]\n- [ ] T002 b depends: [T001]\n",
			wantStdout: "CYCLE: T001 → T002 → T001\n",
			wantCode:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTasks(t, dir, tt.content)
			r := runCLI(t, "", "dag-validate", path)
			if r.stdout != tt.wantStdout {
				t.Errorf("stdout: got %q, want %q", r.stdout, tt.wantStdout)
			}
			if got := exitCode(r.err); got != tt.wantCode {
				t.Errorf("exit code: got %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestParallelValidateCommand(t *testing.T) {
	dir := isolate(t)

	content := "## Phase 1\n" +
		"- [ ] T001 [P] edit `src/a.ts`\n" +
		"- [ ] T002 [P] edit `src/a.ts`\n"
	path := writeTasks(t, dir, content)

	r := runCLI(t, "", "parallel-validate", path)
	want := "CONFLICT: Phase 1 — T001 and T002 both target src/a.ts\n"
	if r.stdout != want {
		t.Errorf("stdout: got %q, want %q", r.stdout, want)
	}
	if exitCode(r.err) != 1 {
		t.Errorf("expected exit 1, got %v", r.err)
	}

	r = runCLI(t, "", "--marker", "[par]", "parallel-validate", path)
	if r.stdout != "Valid: no [par] tasks found, nothing to validate\n" || r.err != nil {
		t.Errorf("custom marker: got stdout=%q err=%v", r.stdout, r.err)
	}
}

func TestValidatorArgumentErrors(t *testing.T) {
	dir := isolate(t)

	for _, name := range []string{"dag-validate", "parallel-validate", "validate"} {
		t.Run(name+" without file", func(t *testing.T) {
			r := runCLI(t, "", name)
			want := "Usage: selfish " + name + " <tasks_file_path>\n"
			if r.stderr != want {
				t.Errorf("stderr: got %q, want %q", r.stderr, want)
			}
			if r.stdout != "" || exitCode(r.err) != 1 {
				t.Errorf("got stdout=%q err=%v", r.stdout, r.err)
			}
		})

		t.Run(name+" with missing file", func(t *testing.T) {
			missing := filepath.Join(dir, "missing.md")
			r := runCLI(t, "", name, missing)
			want := "Error: file not found: " + missing + "\n"
			if r.stderr != want {
				t.Errorf("stderr: got %q, want %q", r.stderr, want)
			}
			var exitErr *ExitError
			if !errors.As(r.err, &exitErr) || exitErr.Code != 1 || !exitErr.Silent {
				t.Errorf("expected silent exit 1, got %v", r.err)
			}
		})
	}
}

func TestValidateCommandRunsBoth(t *testing.T) {
	dir := isolate(t)

	content := "## Phase 1\n" +
		"- [ ] T001 [P] edit `a/x.go`\n" +
		"- [ ] T002 [P] edit `a/y.go` depends: [T001]\n"
	path := writeTasks(t, dir, content)

	r := runCLI(t, "", "validate", path)
	want := "Valid: 2 tasks, no circular dependencies\n" +
		"Valid: 2 [P] tasks across 1 phases, no file overlaps\n"
	if r.stdout != want || r.err != nil {
		t.Errorf("got stdout=%q err=%v", r.stdout, r.err)
	}

	cyclic := writeTasks(t, dir, "- [ ] T1 depends: [T1]\n")
	r = runCLI(t, "", "validate", cyclic)
	if !strings.HasPrefix(r.stdout, "CYCLE: T1 → T1\n") || exitCode(r.err) != 1 {
		t.Errorf("got stdout=%q err=%v", r.stdout, r.err)
	}
}

func TestExportCommand(t *testing.T) {
	dir := isolate(t)
	path := writeTasks(t, dir, "## Phase 1\n- [x] T001 [P] add `cmd/root.go`\n- [ ] T002 wire depends: [T001]\n")

	r := runCLI(t, "", "export", path)
	if r.err != nil {
		t.Fatalf("export: %v (stderr %q)", r.err, r.stderr)
	}
	for _, s := range []string{`"schema_version": 1`, `"id": "T001"`, `"status": "done"`, `"depends_on": [`} {
		if !strings.Contains(r.stdout, s) {
			t.Errorf("JSON output missing %s:\n%s", s, r.stdout)
		}
	}

	out := filepath.Join(dir, "tasks.yaml")
	r = runCLI(t, "", "export", "-format", "yaml", "-out", out, path)
	if r.err != nil {
		t.Fatalf("export yaml: %v", r.err)
	}
	if r.stdout != "" {
		t.Errorf("nothing should go to stdout with -out, got %q", r.stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "schema_version: 1") {
		t.Errorf("unexpected YAML:\n%s", data)
	}

	r = runCLI(t, "", "export", "-format", "xml", path)
	if r.err == nil || !strings.Contains(r.err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", r.err)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "selfish.toml"), []byte("scope = \"project\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SELFISH_LOG_LEVEL", "debug")

	r := runCLI(t, "", "--claude-bin", "/opt/claude", "config")
	if r.err != nil {
		t.Fatalf("config: %v", r.err)
	}
	for _, s := range []string{
		`"project"`, "(project file)",
		`"debug"`, "(environment)",
		`"/opt/claude"`, "(flag)",
		"(default)",
		"Config files:", "selfish.toml",
	} {
		if !strings.Contains(r.stdout, s) {
			t.Errorf("config output missing %q:\n%s", s, r.stdout)
		}
	}

	r = runCLI(t, "", "config", "-example")
	if r.err != nil || !strings.Contains(r.stdout, "parallel_marker") {
		t.Errorf("example: err=%v stdout=%q", r.err, r.stdout)
	}
}

type recordingRunner struct {
	commands []string
	fail     map[string]error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	r.commands = append(r.commands, line)
	return r.fail[line]
}

func (r *recordingRunner) Quiet(ctx context.Context, name string, args ...string) error {
	return r.Run(ctx, name, args...)
}

func withRunner(t *testing.T, r installer.Runner) {
	t.Helper()
	old := newRunner
	newRunner = func(streams) installer.Runner { return r }
	t.Cleanup(func() { newRunner = old })
}

func TestInstallCommand(t *testing.T) {
	isolate(t)

	t.Run("scope flag", func(t *testing.T) {
		rec := &recordingRunner{}
		withRunner(t, rec)
		r := runCLI(t, "", "install", "-scope", "project")
		if r.err != nil {
			t.Fatalf("install: %v", r.err)
		}
		want := []string{
			"claude --version",
			"claude plugin marketplace add jhlee0409/selfish-pipeline",
			"claude plugin install selfish@selfish-pipeline --scope project",
		}
		if strings.Join(rec.commands, "\n") != strings.Join(want, "\n") {
			t.Errorf("commands: got %q", rec.commands)
		}
	})

	t.Run("prompt picks scope", func(t *testing.T) {
		rec := &recordingRunner{}
		withRunner(t, rec)
		r := runCLI(t, "3\n", "install")
		if r.err != nil {
			t.Fatalf("install: %v", r.err)
		}
		if !strings.Contains(r.stdout, "Choice [1/2/3] (default: 1)") {
			t.Errorf("prompt missing:\n%s", r.stdout)
		}
		last := rec.commands[len(rec.commands)-1]
		if !strings.HasSuffix(last, "--scope local") {
			t.Errorf("last command: %q", last)
		}
	})

	t.Run("yes uses configured scope", func(t *testing.T) {
		rec := &recordingRunner{}
		withRunner(t, rec)
		t.Setenv("SELFISH_SCOPE", "local")
		r := runCLI(t, "", "install", "-yes")
		if r.err != nil {
			t.Fatalf("install: %v", r.err)
		}
		if last := rec.commands[len(rec.commands)-1]; !strings.HasSuffix(last, "--scope local") {
			t.Errorf("last command: %q", last)
		}
	})

	t.Run("configured plugin reference", func(t *testing.T) {
		rec := &recordingRunner{}
		withRunner(t, rec)
		t.Setenv("SELFISH_PLUGIN", "afc")
		t.Setenv("SELFISH_MARKETPLACE", "afc-market")
		r := runCLI(t, "", "install", "-yes")
		if r.err != nil {
			t.Fatalf("install: %v", r.err)
		}
		want := "claude plugin install afc@afc-market --scope user"
		if last := rec.commands[len(rec.commands)-1]; last != want {
			t.Errorf("last command: got %q, want %q", last, want)
		}
	})

	t.Run("invalid scope", func(t *testing.T) {
		withRunner(t, &recordingRunner{})
		r := runCLI(t, "", "install", "-scope", "global")
		if r.err == nil || !strings.Contains(r.err.Error(), "invalid scope") {
			t.Errorf("expected invalid scope error, got %v", r.err)
		}
	})

	t.Run("missing host", func(t *testing.T) {
		withRunner(t, &recordingRunner{fail: map[string]error{"claude --version": errors.New("not found")}})
		r := runCLI(t, "", "install", "-yes")
		if !errors.Is(r.err, installer.ErrHostMissing) {
			t.Errorf("expected ErrHostMissing, got %v", r.err)
		}
	})

	t.Run("install failure", func(t *testing.T) {
		withRunner(t, &recordingRunner{fail: map[string]error{
			"claude plugin install selfish@selfish-pipeline --scope user": errors.New("exit status 1"),
		}})
		r := runCLI(t, "", "install", "-yes")
		var stepErr *installer.StepError
		if !errors.As(r.err, &stepErr) {
			t.Errorf("expected StepError, got %v", r.err)
		}
	})
}
