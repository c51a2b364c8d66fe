// Command bongo previews, validates and debugs avatar packs.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/phanxgames/bongo"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	logLevel string
	rootCmd  *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:           "bongo",
		Short:         "Reactive layered avatar tools",
		Long:          `Preview, validate and debug keyboard-reactive avatar packs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); defaults to $BONGO_LOG_LEVEL or warn")

	rootCmd.AddCommand(newViewCmd(), newValidateCmd(), newCaptureCmd(), newKeysCmd())
}

// newLogger builds the command's logger from --log-level and the environment.
func newLogger(name string) hclog.Logger {
	level := logLevel
	if level == "" {
		level = bongo.LogLevel()
	}
	return bongo.NewLogger(name, level, os.Stderr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
