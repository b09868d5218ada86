package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/hildon-home/internal/picker"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Show each view, whether it is active and where its background comes from",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := picker.NewList()
			session, err := a.views.Open(cmd.Context(), list)
			if err != nil {
				return err
			}
			defer session.Discard()

			rows := make([][]string, 0, list.Len())
			for pos := 0; pos < list.Len(); pos++ {
				item := list.Item(pos)
				active := "no"
				if item.Selected {
					active = "yes"
				}
				rows = append(rows, []string{strconv.Itoa(item.View), active, string(item.Source), item.Path})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("VIEW", "ACTIVE", "SOURCE", "PATH").
				Rows(rows...)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.Render())
			if session.Repaired() {
				fmt.Fprintln(out, "No view is active in the configuration; view 1 is shown as active.")
			}
			return nil
		},
	}
}
