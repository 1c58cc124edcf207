package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/cli"
	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

func correctCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correct <statement-id> <transaction-id> <category>",
		Short: "Correct a stored transaction's category",
		Long: `Override the category of a persisted transaction. The correction is
authoritative (never re-categorized) and teaches a pattern from the
transaction's description so future statements benefit. ID arguments
accept unambiguous prefixes.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			category := model.Category(args[2])
			if !category.Valid() {
				fmt.Println(cli.FormatError("unknown category: " + args[2]))
				return nil
			}

			db, cleanup, err := getDatabase(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			statementID, err := resolveStatementID(ctx, db, args[0])
			if err != nil {
				return err
			}

			txns, err := db.GetStatementTransactions(ctx, statementID)
			if err != nil {
				return fmt.Errorf("failed to load statement transactions: %w", err)
			}

			txn, err := matchTransaction(txns, args[1])
			if err != nil {
				fmt.Println(cli.FormatError(err.Error()))
				return nil
			}

			if err := db.UpdateTransactionCategory(ctx, txn.ID, category); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					fmt.Println(cli.FormatError("no such transaction: " + args[1]))
					return nil
				}
				return err
			}

			reg, err := loadRegistry(ctx, db)
			if err != nil {
				return err
			}
			patternText, err := reg.Learn(txn.Description, category)
			if err != nil {
				return fmt.Errorf("failed to learn from correction: %w", err)
			}
			if err := saveRegistry(ctx, db, reg); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("corrected %q → %s (learned %q)",
				txn.Description, category, patternText)))
			return nil
		},
	}
}

func matchTransaction(txns []model.Transaction, idPrefix string) (*model.Transaction, error) {
	var found *model.Transaction
	for i := range txns {
		if !strings.HasPrefix(txns[i].ID, idPrefix) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("transaction id %q is ambiguous", idPrefix)
		}
		found = &txns[i]
	}
	if found == nil {
		return nil, fmt.Errorf("no transaction matches id %q", idPrefix)
	}
	return found, nil
}
