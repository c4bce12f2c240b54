package main

import (
	"github.com/spf13/cobra"
)

func newConditionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conditions [name]",
		Short: "List the condition catalog or show one entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := opts.build(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if len(args) == 1 {
				item, err := app.Catalog.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), item)
			}
			items, err := app.Catalog.List(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}
	return cmd
}
