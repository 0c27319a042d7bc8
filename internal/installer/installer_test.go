package installer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type call struct {
	Quiet bool
	Args  []string
}

type fakeRunner struct {
	calls []call
	fail  map[string]error // keyed by joined command line
}

func (f *fakeRunner) record(quiet bool, name string, args []string) error {
	full := append([]string{name}, args...)
	f.calls = append(f.calls, call{Quiet: quiet, Args: full})
	return f.fail[strings.Join(full, " ")]
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	return f.record(false, name, args)
}

func (f *fakeRunner) Quiet(_ context.Context, name string, args ...string) error {
	return f.record(true, name, args)
}

func testOptions() Options {
	return Options{
		Binary:    "claude",
		Repo:      "jhlee0409/selfish-pipeline",
		PluginRef: "selfish@selfish-pipeline",
	}
}

func TestScopeLookup(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"", "user", true},
		{" 1 ", "user", true},
		{"2", "project", true},
		{"3", "local", true},
		{"4", "", false},
		{"user", "", false},
	}
	for _, tt := range tests {
		got, ok := ScopeByKey(tt.key)
		if ok != tt.ok || got.Name != tt.want {
			t.Errorf("ScopeByKey(%q): got %q, %v", tt.key, got.Name, ok)
		}
	}

	s, err := ScopeByName("Project")
	if err != nil || s.Settings != ".claude/settings.json" {
		t.Errorf("ScopeByName(Project): got %+v, %v", s, err)
	}
	if _, err := ScopeByName("global"); err == nil || !strings.Contains(err.Error(), "invalid scope") {
		t.Errorf("ScopeByName(global): expected invalid scope error, got %v", err)
	}
	if diff := cmp.Diff([]string{"user", "project", "local"}, ScopeNames()); diff != "" {
		t.Errorf("ScopeNames mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckHost(t *testing.T) {
	runner := &fakeRunner{}
	inst := New(testOptions(), runner, nil, nil)
	if err := inst.CheckHost(context.Background()); err != nil {
		t.Fatalf("CheckHost: %v", err)
	}
	want := []call{{Quiet: true, Args: []string{"claude", "--version"}}}
	if diff := cmp.Diff(want, runner.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	runner = &fakeRunner{fail: map[string]error{"claude --version": errors.New("exec: not found")}}
	inst = New(testOptions(), runner, nil, nil)
	err := inst.CheckHost(context.Background())
	if !errors.Is(err, ErrHostMissing) {
		t.Fatalf("expected ErrHostMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), HostURL) {
		t.Errorf("error should point at %s: %v", HostURL, err)
	}
}

func TestInstallRunsStepsInOrder(t *testing.T) {
	runner := &fakeRunner{}
	var out bytes.Buffer
	inst := New(testOptions(), runner, nil, &out)

	scope, _ := ScopeByKey("3")
	if err := inst.Install(context.Background(), scope); err != nil {
		t.Fatalf("Install: %v", err)
	}

	want := []call{
		{Args: []string{"claude", "plugin", "marketplace", "add", "jhlee0409/selfish-pipeline"}},
		{Args: []string{"claude", "plugin", "install", "selfish@selfish-pipeline", "--scope", "local"}},
	}
	if diff := cmp.Diff(want, runner.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	for _, s := range []string{"[1/2]", "[2/2]", "--scope local", "/selfish:init", "/selfish:auto"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q:\n%s", s, out.String())
		}
	}
}

func TestInstallContinuesWhenMarketplaceFails(t *testing.T) {
	runner := &fakeRunner{fail: map[string]error{
		"claude plugin marketplace add jhlee0409/selfish-pipeline": errors.New("already added"),
	}}
	inst := New(testOptions(), runner, nil, nil)

	if err := inst.Install(context.Background(), DefaultScope()); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected install to run after marketplace failure, got %d calls", len(runner.calls))
	}
}

func TestInstallFailureListsManualCommands(t *testing.T) {
	cause := errors.New("exit status 1")
	runner := &fakeRunner{fail: map[string]error{
		"claude plugin install selfish@selfish-pipeline --scope user": cause,
	}}
	inst := New(testOptions(), runner, nil, nil)

	err := inst.Install(context.Background(), DefaultScope())
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected *StepError, got %T: %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Error("StepError should unwrap to the runner error")
	}
	msg := err.Error()
	for _, s := range []string{
		"claude plugin marketplace add jhlee0409/selfish-pipeline",
		"claude plugin install selfish@selfish-pipeline --scope user",
	} {
		if !strings.Contains(msg, s) {
			t.Errorf("error missing manual command %q:\n%s", s, msg)
		}
	}
}

func TestInstallCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &fakeRunner{fail: map[string]error{
		"claude plugin marketplace add jhlee0409/selfish-pipeline": errors.New("signal: killed"),
	}}
	inst := New(testOptions(), runner, nil, nil)

	if err := inst.Install(ctx, DefaultScope()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("install step should not run after cancellation, got %d calls", len(runner.calls))
	}
}

func TestExecRunner(t *testing.T) {
	var stdout bytes.Buffer
	r := ExecRunner{Stdout: &stdout}
	if err := r.Run(context.Background(), "sh", "-c", "echo hello"); err != nil {
		t.Skipf("sh not available: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello" {
		t.Errorf("stdout: got %q", got)
	}

	err := r.Quiet(context.Background(), "sh", "-c", "exit 3")
	if err == nil || !strings.Contains(err.Error(), "sh -c exit 3") {
		t.Errorf("expected error naming the command, got %v", err)
	}
}
