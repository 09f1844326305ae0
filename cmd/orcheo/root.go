package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/infrastructure/logging"
	"github.com/wiredwork/orcheo/internal/store"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

// bootstrap loads run configuration and the workflow store the first time
// a subcommand needs them. Deferred past cobra's flag parsing (main builds
// AppContext with only a logger; --config isn't known until RunE runs).
func bootstrap(app *AppContext, flags *rootFlags) error {
	if app.Settings != nil {
		return nil
	}

	settings, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration from %q: %w", flags.configPath, err)
	}
	app.Settings = settings

	level := "info"
	if flags.verbose {
		level = "debug"
	}
	real, err := logging.New(logging.Options{Level: level, Component: "cli", Layer: "infrastructure"})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	if app.logBuffer != nil {
		app.logBuffer.Flush(real)
		app.logBuffer = nil
	}
	app.Logger = real

	root := settings.WorkflowStoreRoot
	if root == "" {
		root = "workflows"
	}
	s, err := store.NewFileStore(root)
	if err != nil {
		return fmt.Errorf("opening workflow store at %q: %w", root, err)
	}
	app.Store = s

	return nil
}

func newRootCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orcheo",
		Short:         "Orcheo drafts, repairs, and executes agentic workflows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "settings.yaml", "Path to the run configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRunCmd(app, flags))
	cmd.AddCommand(newPlanCmd(app, flags))
	cmd.AddCommand(newListCmd(app, flags))
	cmd.AddCommand(newShowCmd(app, flags))
	cmd.AddCommand(newValidateCmd(app))

	return cmd
}
