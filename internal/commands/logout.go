package commands

import (
	"context"
	"flag"
	"fmt"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string     { return "todolist logout [common flags]" }
func (c *LogoutCmd) NeedsStore() bool  { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, s Streams) int {
	if !cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(s.Out, "not logged in")
		}
		return exitcode.Success
	}

	if err := cfg.RemoveToken(); err != nil {
		fmt.Fprintf(s.Err, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}
	cfg.Logger().Debug("token removed", "path", cfg.TokenPath())
	return ok(cfg, s.Out)
}
