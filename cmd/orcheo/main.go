package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wiredwork/orcheo/internal/infrastructure/logging"
)

func main() {
	// The real logger's level depends on --verbose, which cobra hasn't
	// parsed yet at this point. Buffer log calls made before bootstrap runs
	// and replay them into the real logger once the flag is known.
	buffer := logging.NewEventBuffer(0)
	app := &AppContext{Logger: logging.NewBufferedLogger(buffer), logBuffer: buffer}
	flags := &rootFlags{}

	correlationID := logging.GenerateCorrelationID()
	ctx := logging.WithCorrelationID(context.Background(), correlationID)

	rootCmd := newRootCmd(app, flags)
	app.Logger.Info(ctx, "starting orcheo command", "pid", os.Getpid())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
