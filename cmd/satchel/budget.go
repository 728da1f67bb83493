package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satchel-app/satchel/internal/cli"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage the starting budget",
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(showBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the starting budget for the trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.SetStartingBudget(amount); err != nil {
				return renderOpError(err)
			}
			a.persist(ctx)

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Starting budget set to %.2f", amount)))
			return nil
		},
	}
}

func showBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the starting budget and what's left of it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if a.store.StartingBudget() == 0 {
				fmt.Println(cli.InfoStyle.Render("No budget set yet. Use 'satchel budget set <amount>'."))
				return nil
			}

			remaining := a.store.RemainingBudget()
			remainingText := fmt.Sprintf("%.2f", remaining)
			if remaining < 0 {
				remainingText = cli.OverBudgetStyle.Render(remainingText)
			}

			fmt.Printf("%s %.2f\n", cli.BoldStyle.Render("Starting budget:"), a.store.StartingBudget())
			fmt.Printf("%s %.2f\n", cli.BoldStyle.Render("Total spent:    "), a.store.TotalSpent())
			fmt.Printf("%s %s\n", cli.BoldStyle.Render("Remaining:      "), remainingText)
			fmt.Printf("%s %.1f%%\n", cli.BoldStyle.Render("Progress:       "), a.store.BudgetProgress())
			return nil
		},
	}
}
