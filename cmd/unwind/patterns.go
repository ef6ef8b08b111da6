package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/unwind/go-controller/internal/patternmem"
)

// #region patterns

func newPatternsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect or clear the explained-pattern memory",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "List patterns that already received their full explanation",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := patternmem.NewStore(&o.cfg.Patterns)
				if err != nil {
					return err
				}
				defer closeIfCloser(store, o.logger)

				explained, err := store.Load(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(explained) == 0 {
					fmt.Fprintln(out, "No patterns explained yet.")
					return nil
				}
				for _, p := range explained {
					fmt.Fprintf(out, "%-20s %s\n", p, p.Label())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget every explained pattern",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := patternmem.NewStore(&o.cfg.Patterns)
				if err != nil {
					return err
				}
				defer closeIfCloser(store, o.logger)

				if err := store.Save(cmd.Context(), nil); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Pattern memory cleared.")
				return nil
			},
		},
	)
	return cmd
}

// #endregion patterns
