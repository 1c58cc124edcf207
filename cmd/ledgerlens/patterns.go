package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/cli"
	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns",
		Aliases: []string{"pattern"},
		Short:   "Manage learned categorization patterns",
		Long: `Manage the learned patterns that take precedence over the built-in
keyword rules during categorization.`,
	}

	cmd.AddCommand(patternsListCmd())
	cmd.AddCommand(patternsTeachCmd())
	cmd.AddCommand(patternsForgetCmd())

	return cmd
}

func patternsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List patterns",
		Long:  `List learned patterns, or every rule including the built-in defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			reg, err := loadRegistry(ctx, db)
			if err != nil {
				return err
			}

			all, _ := cmd.Flags().GetBool("all")
			entries := reg.Learned()
			if all {
				entries = reg.Entries()
			}

			if len(entries) == 0 {
				slog.Info("No learned patterns yet; teach one with 'patterns teach'")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PATTERN\tCATEGORY\tMATCH\tCONFIDENCE\tUSED\tTIER")
			for _, entry := range entries {
				tier := "default"
				if entry.Learned {
					tier = "learned"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%d\t%s\n",
					entry.Pattern,
					entry.Category,
					entry.MatchType,
					entry.Confidence*100,
					entry.TimesUsed,
					tier)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Include the built-in default rules")
	return cmd
}

func patternsTeachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teach <description> <category>",
		Short: "Teach a pattern from a transaction description",
		Long: `Derive a pattern from the description and map it to a category.
The pattern takes effect on the next categorization call.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			description := args[0]
			category := model.Category(args[1])

			db, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			reg, err := loadRegistry(ctx, db)
			if err != nil {
				return err
			}

			patternText, err := reg.Learn(description, category)
			if err != nil {
				if errors.Is(err, common.ErrInvalidPattern) {
					fmt.Println(cli.FormatError(err.Error()))
					return nil
				}
				return err
			}

			if err := saveRegistry(ctx, db, reg); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("learned %q → %s", patternText, category)))
			return nil
		},
	}
}

func patternsForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <pattern>",
		Short: "Forget a learned pattern",
		Long:  `Remove a learned pattern by its exact stored pattern text.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patternText := args[0]

			db, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := db.DeleteLearnedPattern(ctx, patternText); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					fmt.Println(cli.FormatError("no such learned pattern: " + patternText))
					return nil
				}
				return err
			}

			fmt.Println(cli.FormatSuccess("forgot pattern " + patternText))
			return nil
		},
	}
}
