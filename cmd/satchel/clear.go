package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/satchel-app/satchel/internal/budget"
	"github.com/satchel-app/satchel/internal/cli"
)

func clearCmd() *cobra.Command {
	var (
		all        bool
		skipPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear recorded expenses",
		Long: `Remove every recorded expense. By default categories and the starting
budget are kept; pass --all (or set clear.scope: all in the config) to
reset everything.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			scope := budget.ClearExpenses
			if all || viper.GetString("clear.scope") == "all" {
				scope = budget.ClearAll
			}

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			prompt := fmt.Sprintf("Delete all %d expense(s)?", len(a.store.Expenses()))
			if scope == budget.ClearAll {
				prompt = "Reset the whole budget, including categories?"
			}
			if !skipPrompt && !cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				fmt.Println(cli.InfoStyle.Render("Aborted."))
				return nil
			}

			a.store.Clear(scope)
			a.persist(ctx)

			if scope == budget.ClearAll {
				fmt.Println(cli.SuccessStyle.Render("✓ Budget reset"))
			} else {
				fmt.Println(cli.SuccessStyle.Render("✓ Expenses cleared"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also remove categories and the starting budget")
	cmd.Flags().BoolVar(&skipPrompt, "yes", false, "skip the confirmation prompt")

	return cmd
}
