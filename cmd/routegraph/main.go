// Command routegraph inspects routing configurations and runs them through
// the engine offline.
//
// Usage:
//
//	routegraph inspect config.json
//	routegraph simulate --duration 2s --freq 440 config.json
//	routegraph simulate --record out.wav config.json
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	log := logrus.New()

	root := &cobra.Command{
		Use:   "routegraph",
		Short: "Inspect and simulate audio routing graphs",
		Long: `routegraph loads a routing configuration, prints how each graph is
scheduled and can push a test signal through the processing engine.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}

			log.SetLevel(level)
			log.SetOutput(cmd.ErrOrStderr())

			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")

	root.AddCommand(newInspectCmd(log))
	root.AddCommand(newSimulateCmd(log))

	return root
}
