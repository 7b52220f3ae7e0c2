package main

import (
	"fmt"
	"log/slog"

	"github.com/anggasct/fsm"
	"github.com/anggasct/fsm/pkg/definition"
	"github.com/anggasct/fsm/pkg/observers"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run FILE EVENT...",
		Short: "Fire events against a definition",
		Long:  `Builds the machine described by FILE and fires each EVENT in order, stopping at the first failure.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			return runEvents(cmd, args[0], fsm.State(from), args[1:])
		},
	}
	cmd.Flags().String("from", "", "Start in this state instead of the initial state")
	return cmd
}

func runEvents(cmd *cobra.Command, path string, from fsm.State, events []string) error {
	def, err := definition.Load(path)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cmd.ErrOrStderr())
	m, err := def.Build(
		fsm.WithLogger(logger),
		fsm.WithObserver(observers.NewLoggingObserver(logger, slog.LevelDebug)),
	)
	if err != nil {
		return err
	}

	if from != "" {
		if err := m.SetState(from); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if err := m.After(fsm.Wildcard, func(e *fsm.Event) error {
		_, err := fmt.Fprintf(out, "%s: %s -> %s\n", e.Name, e.From, e.To)
		return err
	}); err != nil {
		return err
	}

	for _, name := range events {
		if err := m.FireContext(cmd.Context(), name); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "final state: %s\n", m.CurrentState())
	return nil
}
