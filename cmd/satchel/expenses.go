package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/satchel-app/satchel/internal/budget"
	"github.com/satchel-app/satchel/internal/cli"
	"github.com/satchel-app/satchel/internal/model"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses",
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		category string
		dateStr  string
	)

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			date := model.DateOf(time.Now())
			if dateStr != "" {
				if date, err = model.ParseDate(dateStr); err != nil {
					return err
				}
			}

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			categoryID := ""
			if category != "" {
				if categoryID, err = resolveCategoryID(a.store, category); err != nil {
					return err
				}
			}

			exp, err := a.store.AddExpense(model.ExpenseForm{
				Description: args[0],
				Amount:      amount,
				CategoryID:  categoryID,
				Date:        date,
			})
			if err != nil {
				return renderOpError(err)
			}
			a.persist(ctx)

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Recorded %q (%.2f) on %s", exp.Description, exp.Amount, exp.Date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category id or name (required)")
	cmd.Flags().StringVar(&dateStr, "date", "", "expense date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			categoryID := ""
			if category != "" {
				if categoryID, err = resolveCategoryID(a.store, category); err != nil {
					return err
				}
			}

			names := make(map[string]string)
			for _, cat := range a.store.Categories() {
				names[cat.ID] = cat.Name
			}

			expenses := a.store.Expenses()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 10),
				strings.Repeat("-", 30),
				strings.Repeat("-", 16),
				strings.Repeat("-", 10))

			shown := 0
			for _, exp := range expenses {
				if categoryID != "" && exp.CategoryID != categoryID {
					continue
				}
				name, ok := names[exp.CategoryID]
				if !ok {
					name = cli.SubtleStyle.Render("(unknown)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n",
					shortID(exp.ID), exp.Date, exp.Description, name, exp.Amount)
				shown++
			}

			if shown == 0 {
				_ = w.Flush()
				fmt.Println(cli.InfoStyle.Render("No expenses found. Use 'satchel expenses add' to record one."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show expenses in this category")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			id, err := resolveExpenseID(a.store, args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteExpense(id); err != nil {
				return renderOpError(err)
			}
			a.persist(ctx)

			fmt.Println(cli.SuccessStyle.Render("✓ Deleted expense"))
			return nil
		},
	}
}

// resolveExpenseID accepts a full expense id or a unique prefix.
func resolveExpenseID(store *budget.Store, ref string) (string, error) {
	var matches []string
	for _, exp := range store.Expenses() {
		if exp.ID == ref {
			return exp.ID, nil
		}
		if strings.HasPrefix(exp.ID, ref) {
			matches = append(matches, exp.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no expense matches %q", ref)
	default:
		return "", fmt.Errorf("%q is ambiguous: %d expenses match", ref, len(matches))
	}
}
