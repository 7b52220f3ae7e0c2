package main

import (
	"fmt"

	"github.com/anggasct/fsm"
	"github.com/anggasct/fsm/pkg/definition"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a definition for consistency",
		Long:  `Builds the machine described by FILE and reports the first invalid state or event.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := definition.Load(args[0])
			if err != nil {
				return err
			}

			m, err := def.Build(fsm.WithLogger(newLogger(cmd, cmd.ErrOrStderr())))
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d states, %d events, initial state %s\n",
				args[0], len(m.States()), len(m.Events()), m.InitialState())
			return nil
		},
	}
}
