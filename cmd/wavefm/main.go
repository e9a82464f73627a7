// Command wavefm runs the WaveFM progression core headless.
//
// Usage:
//
//	wavefm run
//	wavefm simulate --user alice --seconds 120
//	wavefm inspect --data-path ./data --user alice
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/wavefmapp/wavefm-core/internal/di"
	"github.com/wavefmapp/wavefm-core/internal/logger"
)

func main() {
	root := &cobra.Command{
		Use:   "wavefm",
		Short: "WaveFM session-tracking and progression core",
	}

	root.AddCommand(runCmd())
	root.AddCommand(simulateCmd())
	root.AddCommand(inspectCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCmd starts the engine against the configured store and keeps it
// alive until interrupted. Intended for embedding experiments; the real
// client links the library directly.
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the engine until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			injector := di.NewContainer()

			engine, err := di.Bootstrap(injector)
			if err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}

			log := do.MustInvoke[*logger.Logger](injector)

			sess, err := engine.Resume(context.Background())
			if err != nil {
				log.Warn("could not resume previous session", "error", err)
			} else if !sess.Anonymous() {
				log.Info("session resumed", "username", sess.Username)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info("Shutting down...")
			if err := injector.Shutdown(); err != nil {
				log.Error("Shutdown error", "error", err)
			}
			return nil
		},
	}
}
