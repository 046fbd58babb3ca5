package commands

import (
	"context"
	"flag"
	"fmt"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
	"todolist/internal/tui"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd implements the watch command.
type WatchCmd struct{}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return []string{"tui"} }
func (c *WatchCmd) Synopsis() string  { return "Interactive view with live countdowns" }
func (c *WatchCmd) Usage() string     { return "todolist watch [common flags]" }
func (c *WatchCmd) NeedsStore() bool  { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) int {
	ctl, code := newController(cfg, st, s.Err)
	if code != exitcode.Success {
		return code
	}
	if err := tui.Run(ctx, ctl, s.In, s.Out); err != nil {
		fmt.Fprintf(s.Err, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
