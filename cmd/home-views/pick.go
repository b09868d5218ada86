package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/hildon-home/internal/domain/views"
	"github.com/GriffinCanCode/hildon-home/internal/picker"
)

func newPickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose the active views interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := picker.NewList()
			session, err := a.views.Open(cmd.Context(), list)
			if err != nil {
				return err
			}

			outcome, err := picker.Run(list, "Select views", cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				_ = session.Discard()
				return err
			}

			written, err := session.Finish(cmd.Context(), outcome)
			if err != nil {
				return err
			}
			if outcome == views.OutcomeConfirmed {
				fmt.Fprintf(cmd.OutOrStdout(), "Active views: %v\n", written)
			}
			return nil
		},
	}
}
