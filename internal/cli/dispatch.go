// Package cli parses the command line and dispatches to a registered command.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"todolist/internal/commands"
	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
)

// StoreFactory opens the task store described by cfg.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (store.Store, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, s commands.Streams) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, s)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(s.Err, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], s)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, s commands.Streams) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(s.Err, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, s)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, s commands.Streams) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(s.Err, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A leading positional starting with - should have been parsed as a flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(s.Err, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(s.Err, "error: %s\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if debug {
		cfg.Log = slog.New(slog.NewTextHandler(s.Err, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	log := cfg.Logger().With("cmd", cmd.Name())
	log.Debug("config loaded", "dir", cfg.Dir, "backend", cfg.Settings.Backend)

	var st store.Store
	if cmd.NeedsStore() {
		if d.factory == nil {
			// Pre-flight only: report missing credentials without opening a store
			return preflight(cfg, s.Err)
		}
		st, err = d.factory(ctx, cfg)
		if err != nil {
			log.Debug("open store failed", "err", err)
			if errors.Is(err, store.ErrAuth) {
				fmt.Fprintf(s.Err, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(s.Err, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
		if c, ok := st.(interface{ Close() }); ok {
			defer c.Close()
		}
	}

	return cmd.Run(ctx, cfg, st, positionalArgs, s)
}

// preflight checks the credential files a store needs.
func preflight(cfg *config.Config, errOut io.Writer) int {
	if cfg.UsesOAuth() {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintf(errOut, "error: not logged in (run: %s login)\n", config.AppName)
			return exitcode.AuthError
		}
	}
	fmt.Fprintln(errOut, "error: no store configured")
	return exitcode.BackendError
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + name
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + name
	}
	return errStr
}
