package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/infrastructure/logging"
	"github.com/wiredwork/orcheo/internal/ports"
	"github.com/wiredwork/orcheo/internal/store"
)

// AppContext bundles the long-lived services every subcommand draws from:
// settings loaded once at startup, the structured logger, and the
// workflow store rooted at Settings.WorkflowStoreRoot.
type AppContext struct {
	Logger   ports.Logger
	Settings *config.Settings
	Store    *store.FileStore

	// logBuffer holds log calls made before bootstrap has loaded settings
	// (and therefore doesn't yet know whether --verbose was set). It is
	// flushed into the real logger and cleared the first time bootstrap
	// runs; nil afterward.
	logBuffer *logging.EventBuffer
}

// CommandContext returns the command's context (falling back to
// Background) together with a component-scoped logger.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}
	return ctx, a.LoggerFor(component)
}

// LoggerFor derives a child logger scoped to component.
func (a *AppContext) LoggerFor(component string) ports.Logger {
	if a == nil || a.Logger == nil {
		return nil
	}
	return a.Logger.With("component", component)
}
