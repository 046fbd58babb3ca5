package commands

import (
	"context"
	"flag"

	"todolist/internal/config"
	"todolist/internal/store"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todolist rm [common flags] <n>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) int {
	return runOnTask(ctx, cfg, st, args, s, func(ctx context.Context, target taskTarget) error {
		return target.ctl.Delete(ctx, target.task.ID)
	})
}
