package main

import (
	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-periods/modules/periods/infrastructure/remote"
)

func newPeriodsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "Period records",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every period, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			records, err := remote.NewPeriodRepository(client).GetAll(cmd.Context())
			if err != nil {
				return err
			}
			lines := make([]periodLine, 0, len(records))
			for _, r := range records {
				lines = append(lines, toPeriodLine(r))
			}
			return writeLines(cmd.OutOrStdout(), lines)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print one period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client()
			if err != nil {
				return err
			}
			rec, err := remote.NewPeriodRepository(client).GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), []periodLine{toPeriodLine(rec)})
		},
	})
	return cmd
}
