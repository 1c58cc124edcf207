package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func statementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "List analyzed statements",
		Long:  `List previously analyzed statements with their summary metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			limit, _ := cmd.Flags().GetInt("limit")

			db, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			summaries, err := db.GetRecentStatements(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list statements: %w", err)
			}

			if len(summaries) == 0 {
				slog.Info("No statements analyzed yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tFILE\tMONTH\tTXNS\tREVENUE\tEXPENSES\tNET\tSCORE")
			for _, s := range summaries {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%d\n",
					s.ID[:8],
					s.Filename,
					s.StatementMonth,
					s.TotalTransactions,
					s.TotalRevenue,
					s.TotalExpenses,
					s.NetCashFlow,
					s.HealthScore)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum statements to list")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Opening the database applies any pending migrations.
			_, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			slog.Info("Database is up to date")
			return nil
		},
	}
}
