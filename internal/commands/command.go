// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/service"
	"todos/internal/store"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the task backend.
	// Commands like help, version, init return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings, logger).
	// svc is nil if NeedsBackend() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// Interactive is implemented by commands that take over the terminal.
// Their logs go to a file instead of stderr.
type Interactive interface {
	Interactive() bool
}

// openStore creates a store for the configured owner.
func openStore(cfg *config.Config, svc service.Service) *store.Store {
	return store.New(svc, cfg.UserID,
		store.WithErrorTTL(cfg.ErrorTTL),
		store.WithLogger(cfg.Log()),
	)
}

// requireOwner reports a config error when no user id is configured.
// Returns false if the command must stop.
func requireOwner(cfg *config.Config, errOut io.Writer) bool {
	if cfg.HasUserID() {
		return true
	}
	fmt.Fprintf(errOut, "error: user id not configured (set user_id in %s, %s, or --user-id)\n", cfg.FilePath(), config.EnvUserID)
	return false
}
