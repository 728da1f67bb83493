package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/satchel-app/satchel/internal/cli"
	"github.com/satchel-app/satchel/internal/tui"
)

func summaryCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the full budget picture",
		Long: `Show the starting budget, totals, and per-category spend. With
--interactive the same data is rendered as a live dashboard.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			sum := a.store.Summarize()

			if interactive {
				return tui.Run(sum)
			}

			fmt.Println(cli.TitleStyle.Render("Travel Budget"))

			if sum.StartingBudget == 0 {
				fmt.Println(cli.InfoStyle.Render("No budget set yet. Use 'satchel budget set <amount>'."))
			} else {
				remainingText := fmt.Sprintf("%.2f", sum.Remaining)
				if sum.Remaining < 0 {
					remainingText = cli.OverBudgetStyle.Render(remainingText)
				}
				fmt.Printf("%s %.2f   %s %.2f   %s %.2f   %s %s   %s %.1f%%\n\n",
					cli.BoldStyle.Render("Budget:"), sum.StartingBudget,
					cli.BoldStyle.Render("Allocated:"), sum.TotalAllocated,
					cli.BoldStyle.Render("Spent:"), sum.TotalSpent,
					cli.BoldStyle.Render("Remaining:"), remainingText,
					cli.BoldStyle.Render("Progress:"), sum.Progress)
			}

			if len(sum.Categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'satchel categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Allocated"),
				cli.HeaderStyle.Render("Spent"),
				cli.HeaderStyle.Render("Remaining"),
				cli.HeaderStyle.Render("Progress"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 8))

			for _, cs := range sum.Categories {
				remaining := fmt.Sprintf("%.2f", cs.Remaining)
				progress := fmt.Sprintf("%.1f%%", cs.Progress)
				if cs.Remaining < 0 {
					remaining = cli.OverBudgetStyle.Render(remaining)
					progress = cli.OverBudgetStyle.Render(progress)
				}
				fmt.Fprintf(w, "%s %s\t%.2f\t%.2f\t%s\t%s\n",
					cli.Swatch(cs.Category.Color), cs.Category.Name,
					cs.Category.Allocated, cs.Spent, remaining, progress)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&interactive, "interactive", false, "render as a live dashboard")

	return cmd
}
