package commands

import (
	"context"
	"flag"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task's completed flag" }
func (c *ToggleCmd) Usage() string     { return "todolist toggle [common flags] <n>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) int {
	return runOnTask(ctx, cfg, st, args, s, func(ctx context.Context, target taskTarget) error {
		_, err := target.ctl.Toggle(ctx, target.task.ID)
		return err
	})
}

// runOnTask resolves args[0] against the loaded list and runs op on it.
func runOnTask(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams, op func(context.Context, taskTarget) error) int {
	target, code := resolveTask(ctx, cfg, st, args, s)
	if code != exitcode.Success {
		return code
	}
	if err := op(ctx, target); err != nil {
		return reportError(s.Err, err)
	}
	return ok(cfg, s.Out)
}
