package commands

import (
	"context"
	"flag"
	"fmt"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks by deadline" }
func (c *ListCmd) Usage() string     { return "todolist list [common flags]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) int {
	ctl, code := loadController(ctx, cfg, st, s.Err)
	if code != exitcode.Success {
		return code
	}

	tasks := ctl.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(s.Out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatTasks(s.Out, tasks, ctl.Remaining(Now()), ctl.Location())
	return exitcode.Success
}
