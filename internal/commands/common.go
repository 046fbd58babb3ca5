package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
	"todolist/internal/tasklist"
)

// Now is the clock used for countdowns. Tests replace it.
var Now = time.Now

// newController builds a controller over st using cfg's timezone and
// logger. It does not load.
func newController(cfg *config.Config, st store.Store, errOut io.Writer) (*tasklist.Controller, int) {
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.AuthError
	}
	return tasklist.New(st, tasklist.WithLocation(loc), tasklist.WithLogger(cfg.Logger())), exitcode.Success
}

// loadController builds a controller and loads the collection.
func loadController(ctx context.Context, cfg *config.Config, st store.Store, errOut io.Writer) (*tasklist.Controller, int) {
	ctl, code := newController(cfg, st, errOut)
	if code != exitcode.Success {
		return nil, code
	}
	if err := ctl.Load(ctx); err != nil {
		return nil, reportError(errOut, err)
	}
	return ctl, exitcode.Success
}

// reportError prints err in the form matching its exit code and returns the code.
func reportError(errOut io.Writer, err error) int {
	code := exitcode.FromError(err)
	switch {
	case errors.Is(err, tasklist.ErrValidation):
		fmt.Fprintf(errOut, "error: %v\n", tasklist.ErrValidation)
	case code == exitcode.UserError:
		fmt.Fprintf(errOut, "error: %v\n", err)
	case code == exitcode.AuthError:
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return code
}

// ok prints the success marker unless quiet.
func ok(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// optionalString is a string flag that records whether it was set.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}
