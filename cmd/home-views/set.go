package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/hildon-home/internal/picker"
	"github.com/GriffinCanCode/hildon-home/internal/shared/paths"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <view>...",
		Short: "Make exactly the given views active",
		Example: `  # keep only the first and third view
  home-views set 1 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseViews(args)
			if err != nil {
				return err
			}

			list := picker.NewList()
			session, err := a.views.Open(cmd.Context(), list)
			if err != nil {
				return err
			}
			list.SelectViews(ids...)

			written, err := session.Commit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active views: %v\n", written)
			return nil
		},
	}
}

func parseViews(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid view %q: not a number", arg)
		}
		if !paths.ValidView(n) {
			return nil, fmt.Errorf("invalid view %d: must be between 1 and %d", n, paths.MaxViews)
		}
		ids = append(ids, n)
	}
	return ids, nil
}
