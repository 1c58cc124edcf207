package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/cli"
	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/engine"
	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/normalize"
	"github.com/ledgerlens/ledgerlens/internal/recurring"
	"github.com/ledgerlens/ledgerlens/internal/report"
	"github.com/ledgerlens/ledgerlens/internal/score"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a statement text file",
		Long: `Analyze raw statement lines extracted from a bank statement: normalize
them into transactions, categorize each one, detect recurring and
debt-like payment series, compute the health scorecard and monthly
summaries, and persist the results.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			year, _ := cmd.Flags().GetInt("year")
			opening, _ := cmd.Flags().GetFloat64("opening-balance")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			lines, err := readLines(path)
			if err != nil {
				return common.NewUserError("failed to read statement file", err)
			}

			// Normalize
			normalizer := normalize.New(normalize.WithYear(year))
			txns := normalizer.Normalize(lines)
			if len(txns) == 0 {
				fmt.Println(cli.FormatError("no transactions found in " + path))
				return nil
			}
			normalize.ApplyRunningBalance(txns, opening)

			slog.Info("normalized statement",
				"file", path,
				"lines", len(lines),
				"transactions", len(txns))

			// Categorize
			db, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			reg, err := loadRegistry(ctx, db)
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(txns),
				progressbar.OptionSetDescription("Categorizing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
			categorizer := engine.New(reg)
			categorizer.CategorizeAll(txns, func() { _ = bar.Add(1) })

			// Derive reports
			series := recurring.Detect(txns)
			card := score.Score(txns)
			months := report.Monthly(txns)
			summary := report.Summarize(txns, card.Overall)
			summary.Filename = filepath.Base(path)

			renderAnalysis(txns, series, card, months, summary)

			if dryRun {
				fmt.Println(cli.SubtleStyle.Render("dry run: nothing persisted"))
				return nil
			}

			if err := db.SaveStatement(ctx, &summary, txns); err != nil {
				return fmt.Errorf("failed to save statement: %w", err)
			}
			if err := saveRegistry(ctx, db, reg); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("statement saved: " + summary.ID))
			return nil
		},
	}

	cmd.Flags().Int("year", time.Now().Year(), "statement year for MM/DD dates")
	cmd.Flags().Float64("opening-balance", 0, "opening balance for running-balance computation")
	cmd.Flags().Bool("dry-run", false, "analyze without persisting results")
	return cmd
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func renderAnalysis(
	txns []model.Transaction,
	series []model.RecurringSeries,
	card model.Scorecard,
	months []model.MonthlySummary,
	summary model.StatementSummary,
) {
	// Headline metrics
	headline := fmt.Sprintf(
		"Transactions: %d\nTotal Revenue: $%.2f\nTotal Expenses: $%.2f\nNet Cash Flow: $%.2f\nHealth Score: %s",
		summary.TotalTransactions,
		summary.TotalRevenue,
		summary.TotalExpenses,
		summary.NetCashFlow,
		cli.FormatScore(summary.HealthScore),
	)
	fmt.Println(cli.RenderBox("Statement Analysis", headline))
	fmt.Println()

	// Transactions
	fmt.Println(cli.FormatTitle("Transactions"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tDESCRIPTION\tAMOUNT\tBALANCE\tCATEGORY\tCONFIDENCE")
	for _, txn := range txns {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\t%.0f%%\n",
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Amount,
			txn.RunningBalance,
			txn.Category,
			txn.Confidence*100)
	}
	_ = w.Flush()
	fmt.Println()

	// Recurring series
	fmt.Println(cli.FormatTitle("Recurring Series"))
	if len(series) == 0 {
		fmt.Println(cli.SubtleStyle.Render("none detected"))
	} else {
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "KEY\tOCCURRENCES\tFREQUENCY\tEST MONTHLY\tDEBT CLASS")
		for _, s := range series {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%.2f\t%s\n",
				s.Key, len(s.Transactions), s.Frequency, s.EstimatedMonthly, s.DebtClass)
		}
		_ = w.Flush()
	}
	fmt.Println()

	// Scorecard
	fmt.Println(cli.FormatTitle("Scorecard"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FACTOR\tSCORE\tWEIGHT")
	for _, sub := range card.SubScores {
		_, _ = fmt.Fprintf(w, "%s\t%.0f\t%.0f%%\n",
			strings.ReplaceAll(string(sub.Factor), "_", " "), sub.Score, sub.Weight*100)
	}
	_, _ = fmt.Fprintf(w, "overall\t%d\t\n", card.Overall)
	_ = w.Flush()
	fmt.Println()

	// Monthly summary
	fmt.Println(cli.FormatTitle("Monthly Summary"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "MONTH\tDEPOSITS\tWITHDRAWALS\tTRUE REVENUE\tHOLDBACK\tSTART\tEND\tNEG DAYS")
	for _, m := range months {
		_, _ = fmt.Fprintf(w, "%s\t%d ($%.2f)\t%d ($%.2f)\t%.2f\t%.1f%%\t%.2f\t%.2f\t%d\n",
			m.Month,
			m.DepositCount, m.DepositTotal,
			m.WithdrawalCount, m.WithdrawalTotal,
			m.TrueRevenue,
			m.HoldbackPercent,
			m.StartingBalance, m.EndingBalance,
			m.NegativeBalanceDays)
	}
	_ = w.Flush()
	fmt.Println()
}
