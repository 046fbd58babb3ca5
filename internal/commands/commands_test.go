package commands_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"todolist/internal/commands"
	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
	"todolist/internal/testutil"
)

var errBackend = errors.New("boom")

// fixedNow sits 90 seconds before the 10:00 deadline used below.
var fixedNow = time.Date(2025, 1, 1, 9, 58, 30, 0, time.UTC)

type result struct {
	stdout string
	stderr string
	code   int
}

// runCommand parses args with the command's flags and runs it against st.
func runCommand(t *testing.T, cmd commands.Command, st store.Store, args []string, quiet bool, stdin string) result {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	prevNow := commands.Now
	commands.Now = func() time.Time { return fixedNow }
	t.Cleanup(func() { commands.Now = prevNow })

	cfg := &config.Config{
		Dir:      t.TempDir(),
		Quiet:    quiet,
		Settings: config.Settings{Timezone: "UTC"},
	}

	var out, errOut strings.Builder
	code := cmd.Run(context.Background(), cfg, st, fs.Args(), commands.Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return result{stdout: out.String(), stderr: errOut.String(), code: code}
}

func seeded() *testutil.FakeStore {
	fs := testutil.NewFakeStore()
	fs.AddTask("b", "Call back", "2025-01-01T10:00", true)
	fs.AddTask("a", "Submit report", "2025-01-01T09:00", false)
	fs.AddTask("c", "Someday", "whenever", false)
	return fs
}

func expectCode(t *testing.T, r result, want int) {
	t.Helper()
	if r.code != want {
		t.Errorf("expected exit code %d, got %d (stderr %q)", want, r.code, r.stderr)
	}
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	r := runCommand(t, &commands.VersionCmd{}, nil, nil, false, "")

	expectCode(t, r, exitcode.Success)
	if r.stderr != "" {
		t.Errorf("expected no stderr, got %q", r.stderr)
	}
	if r.stdout != "todolist 0.1.0\n" {
		t.Errorf("expected version output, got %q", r.stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	r := runCommand(t, &commands.HelpCmd{}, nil, nil, false, "")

	expectCode(t, r, exitcode.Success)
	for _, want := range []string{"Usage:", "todolist add", "todolist watch", "--debug"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for list command
func TestListCommand_WithTasks(t *testing.T) {
	r := runCommand(t, &commands.ListCmd{}, seeded(), nil, false, "")

	expectCode(t, r, exitcode.Success)
	testutil.GoldenString(t, "list", r.stdout)
}

func TestListCommand_Empty(t *testing.T) {
	r := runCommand(t, &commands.ListCmd{}, testutil.NewFakeStore(), nil, false, "")

	expectCode(t, r, exitcode.Success)
	if r.stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", r.stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	r := runCommand(t, &commands.ListCmd{}, testutil.NewFakeStore(), nil, true, "")

	expectCode(t, r, exitcode.Success)
	if r.stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", r.stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	fs := seeded()
	fs.ListErr = errBackend

	r := runCommand(t, &commands.ListCmd{}, fs, nil, false, "")

	expectCode(t, r, exitcode.BackendError)
	if r.stderr != "error: backend error: load tasks: boom\n" {
		t.Errorf("unexpected stderr %q", r.stderr)
	}
}

func TestListCommand_AuthError(t *testing.T) {
	fs := seeded()
	fs.ListErr = fmt.Errorf("token expired: %w", store.ErrAuth)

	r := runCommand(t, &commands.ListCmd{}, fs, nil, false, "")

	expectCode(t, r, exitcode.AuthError)
	if !strings.HasPrefix(r.stderr, "error: auth error: ") {
		t.Errorf("unexpected stderr %q", r.stderr)
	}
}

func TestListCommand_BadTimezone(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Settings: config.Settings{Timezone: "Nowhere/Special"}}
	var out, errOut strings.Builder

	code := (&commands.ListCmd{}).Run(context.Background(), cfg, seeded(), nil, commands.Streams{Out: &out, Err: &errOut})

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(errOut.String(), "invalid timezone") {
		t.Errorf("unexpected stderr %q", errOut.String())
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	fs := testutil.NewFakeStore()

	r := runCommand(t, &commands.AddCmd{}, fs, []string{"--due", "2025-01-02 09:00", "Buy", "milk"}, false, "")

	expectCode(t, r, exitcode.Success)
	if r.stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", r.stdout)
	}
	want := []store.Task{{ID: "task-1", Text: "Buy milk", Deadline: "2025-01-02T09:00"}}
	if got := fs.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if got := fs.Calls(); !reflect.DeepEqual(got, []string{"create"}) {
		t.Errorf("expected only a create call, got %v", got)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	r := runCommand(t, &commands.AddCmd{}, testutil.NewFakeStore(), []string{"--due", "2025-01-02T09:00", "Buy milk"}, true, "")

	expectCode(t, r, exitcode.Success)
	if r.stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", r.stdout)
	}
}

func TestAddCommand_MissingFields(t *testing.T) {
	cases := map[string][]string{
		"no deadline": {"Buy milk"},
		"no title":    {"--due", "2025-01-02T09:00"},
		"blank title": {"--due", "2025-01-02T09:00", "   "},
		"nothing":     nil,
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			fs := testutil.NewFakeStore()

			r := runCommand(t, &commands.AddCmd{}, fs, args, false, "")

			expectCode(t, r, exitcode.UserError)
			if r.stderr != "error: all fields are required\n" {
				t.Errorf("unexpected stderr %q", r.stderr)
			}
			if calls := fs.Calls(); len(calls) != 0 {
				t.Errorf("expected no store calls, got %v", calls)
			}
		})
	}
}

func TestAddCommand_InvalidDeadline(t *testing.T) {
	fs := testutil.NewFakeStore()

	r := runCommand(t, &commands.AddCmd{}, fs, []string{"--due", "next week", "Buy milk"}, false, "")

	expectCode(t, r, exitcode.UserError)
	if !strings.HasPrefix(r.stderr, "error: ") {
		t.Errorf("unexpected stderr %q", r.stderr)
	}
	if calls := fs.Calls(); len(calls) != 0 {
		t.Errorf("expected no store calls, got %v", calls)
	}
}

func TestAddCommand_Interactive(t *testing.T) {
	fs := testutil.NewFakeStore()

	r := runCommand(t, &commands.AddCmd{}, fs, []string{"-i"}, false, "Buy milk\n2025-01-02 09:00\n")

	expectCode(t, r, exitcode.Success)
	if !strings.Contains(r.stderr, "Title: ") {
		t.Errorf("expected prompts on stderr, got %q", r.stderr)
	}
	tasks := fs.Snapshot()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" || tasks[0].Deadline != "2025-01-02T09:00" {
		t.Errorf("unexpected store contents: %+v", tasks)
	}
}

func TestAddCommand_InteractiveCancelled(t *testing.T) {
	fs := testutil.NewFakeStore()

	r := runCommand(t, &commands.AddCmd{}, fs, []string{"-i", "Buy milk"}, false, "")

	expectCode(t, r, exitcode.UserError)
	if !strings.HasSuffix(r.stderr, "error: all fields are required\n") {
		t.Errorf("unexpected stderr %q", r.stderr)
	}
	if calls := fs.Calls(); len(calls) != 0 {
		t.Errorf("expected no store calls, got %v", calls)
	}
}

func TestAddCommand_CreateFails(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.CreateErr = errBackend

	r := runCommand(t, &commands.AddCmd{}, fs, []string{"--due", "2025-01-02T09:00", "Buy milk"}, false, "")

	expectCode(t, r, exitcode.BackendError)
	if r.stderr != "error: backend error: create task: boom\n" {
		t.Errorf("unexpected stderr %q", r.stderr)
	}
}

// Tests for edit command
func TestEditCommand_TitleFlag(t *testing.T) {
	fs := seeded()

	r := runCommand(t, &commands.EditCmd{}, fs, []string{"--title", "Submit final report", "1"}, false, "")

	expectCode(t, r, exitcode.Success)
	got, _ := fs.Get("a")
	want := store.Task{ID: "a", Text: "Submit final report", Deadline: "2025-01-01T09:00"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if calls := fs.Calls(); !reflect.DeepEqual(calls, []string{"list", "update a text deadline"}) {
		t.Errorf("unexpected calls %v", calls)
	}
}

func TestEditCommand_TrailingTitleAndDue(t *testing.T) {
	fs := seeded()

	r := runCommand(t, &commands.EditCmd{}, fs, []string{"--due", "2025-02-01 08:30", "2", "Call", "them", "back"}, false, "")

	expectCode(t, r, exitcode.Success)
	got, _ := fs.Get("b")
	want := store.Task{ID: "b", Text: "Call them back", Completed: true, Deadline: "2025-02-01T08:30"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestEditCommand_EmptyDueRejected(t *testing.T) {
	fs := seeded()

	r := runCommand(t, &commands.EditCmd{}, fs, []string{"--due", "", "1"}, false, "")

	expectCode(t, r, exitcode.UserError)
	if r.stderr != "error: all fields are required\n" {
		t.Errorf("unexpected stderr %q", r.stderr)
	}
	if calls := fs.Calls(); !reflect.DeepEqual(calls, []string{"list"}) {
		t.Errorf("expected no update call, got %v", calls)
	}
}

func TestEditCommand_InteractiveKeepsDefaults(t *testing.T) {
	fs := seeded()

	r := runCommand(t, &commands.EditCmd{}, fs, []string{"-i", "1"}, false, "\n\n")

	expectCode(t, r, exitcode.Success)
	if !strings.Contains(r.stderr, "Title [Submit report]: ") {
		t.Errorf("expected prefilled prompt, got %q", r.stderr)
	}
	got, _ := fs.Get("a")
	if got.Text != "Submit report" || got.Deadline != "2025-01-01T09:00" {
		t.Errorf("expected values kept, got %+v", got)
	}
}

func TestEditCommand_OutOfRange(t *testing.T) {
	r := runCommand(t, &commands.EditCmd{}, seeded(), []string{"--title", "x", "4"}, false, "")

	expectCode(t, r, exitcode.UserError)
	if r.stderr != "error: task number out of range: 4\n" {
		t.Errorf("unexpected stderr %q", r.stderr)
	}
}

// Tests for toggle command
func TestToggleCommand_Success(t *testing.T) {
	fs := seeded()

	r := runCommand(t, &commands.ToggleCmd{}, fs, []string{"2"}, false, "")

	expectCode(t, r, exitcode.Success)
	if r.stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", r.stdout)
	}
	if got, _ := fs.Get("b"); got.Completed {
		t.Error("expected b to be reopened")
	}
	if calls := fs.Calls(); !reflect.DeepEqual(calls, []string{"list", "update b completed"}) {
		t.Errorf("unexpected calls %v", calls)
	}
}

func TestToggleCommand_Refs(t *testing.T) {
	cases := map[string]struct {
		args   []string
		stderr string
	}{
		"missing":      {nil, "error: task number required\n"},
		"not a number": {[]string{"abc"}, "error: invalid task reference: abc\n"},
		"zero":         {[]string{"0"}, "error: task number out of range: 0\n"},
		"past the end": {[]string{"9"}, "error: task number out of range: 9\n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs := seeded()

			r := runCommand(t, &commands.ToggleCmd{}, fs, tc.args, false, "")

			expectCode(t, r, exitcode.UserError)
			if r.stderr != tc.stderr {
				t.Errorf("expected %q, got %q", tc.stderr, r.stderr)
			}
			for _, call := range fs.Calls() {
				if strings.HasPrefix(call, "update") {
					t.Errorf("unexpected store call %q", call)
				}
			}
		})
	}
}

func TestToggleCommand_UpdateFails(t *testing.T) {
	fs := seeded()
	fs.UpdateErr = errBackend

	r := runCommand(t, &commands.ToggleCmd{}, fs, []string{"1"}, false, "")

	expectCode(t, r, exitcode.BackendError)
	if got, _ := fs.Get("a"); got.Completed {
		t.Error("expected a to stay open")
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	fs := seeded()

	r := runCommand(t, &commands.RmCmd{}, fs, []string{"1"}, false, "")

	expectCode(t, r, exitcode.Success)
	if _, ok := fs.Get("a"); ok {
		t.Error("expected a to be deleted")
	}
	if n := len(fs.Snapshot()); n != 2 {
		t.Errorf("expected 2 remaining, got %d", n)
	}
}

func TestRmCommand_NoRef(t *testing.T) {
	fs := seeded()

	r := runCommand(t, &commands.RmCmd{}, fs, nil, false, "")

	expectCode(t, r, exitcode.UserError)
	if calls := fs.Calls(); len(calls) != 0 {
		t.Errorf("expected no store calls, got %v", calls)
	}
}

func TestRmCommand_AuthError(t *testing.T) {
	fs := seeded()
	fs.DeleteErr = fmt.Errorf("forbidden: %w", store.ErrAuth)

	r := runCommand(t, &commands.RmCmd{}, fs, []string{"1"}, false, "")

	expectCode(t, r, exitcode.AuthError)
	if n := len(fs.Snapshot()); n != 3 {
		t.Errorf("expected nothing deleted, got %d tasks", n)
	}
}

// Tests for the registry
func TestRegistry_AliasesResolve(t *testing.T) {
	for alias, name := range map[string]string{
		"create": "add",
		"done":   "toggle",
		"delete": "rm",
		"ls":     "list",
	} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("%s: not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("%s: expected %s, got %s", alias, name, cmd.Name())
		}
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.AddCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.AddCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestRegistry_AllSorted(t *testing.T) {
	var names []string
	for _, cmd := range commands.DefaultRegistry.All() {
		names = append(names, cmd.Name())
	}
	want := []string{"add", "edit", "help", "list", "login", "logout", "rm", "toggle", "version", "watch"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}
