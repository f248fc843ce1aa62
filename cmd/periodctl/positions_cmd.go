package main

import (
	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-periods/modules/periods/infrastructure/remote"
)

func newPositionsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Positions reference list",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every position, verbatim, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			items, err := remote.NewPositionRepository(client).GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), items)
		},
	})
	return cmd
}
