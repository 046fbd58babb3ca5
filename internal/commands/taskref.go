package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
	"todolist/internal/tasklist"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the 1-based task number in args[0].
// The number refers to the position printed by the list command, which is
// deadline order as loaded.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	if num < 1 {
		return 0, fmt.Errorf("task number out of range: %d", num)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// taskAt returns the held task with the given 1-based number.
func taskAt(ctl *tasklist.Controller, num int) (store.Task, error) {
	tasks := ctl.Tasks()
	if num < 1 || num > len(tasks) {
		return store.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}

// taskTarget is a task resolved from a command-line reference together with
// the controller holding it.
type taskTarget struct {
	ctl  *tasklist.Controller
	task store.Task
}

// resolveTask parses args[0], loads the list, and looks the number up.
func resolveTask(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) (taskTarget, int) {
	num, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(s.Err, "error: task number required")
		} else {
			fmt.Fprintf(s.Err, "error: %v\n", err)
		}
		return taskTarget{}, exitcode.UserError
	}

	ctl, code := loadController(ctx, cfg, st, s.Err)
	if code != exitcode.Success {
		return taskTarget{}, code
	}
	task, err := taskAt(ctl, num)
	if err != nil {
		fmt.Fprintf(s.Err, "error: %v\n", err)
		return taskTarget{}, exitcode.UserError
	}
	return taskTarget{ctl: ctl, task: task}, exitcode.Success
}
