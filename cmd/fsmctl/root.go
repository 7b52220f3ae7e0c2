package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fsmctl",
		Short:         "fsmctl checks and drives state machine definitions",
		Long:          `fsmctl loads a YAML state machine definition, validates it and fires events against it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log machine activity to stderr")

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newRunCmd())
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a debug logger on w when verbose is set, and a logger
// that only reports errors otherwise
func newLogger(cmd *cobra.Command, w io.Writer) *slog.Logger {
	level := slog.LevelError
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
