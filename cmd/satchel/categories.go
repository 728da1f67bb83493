package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/satchel-app/satchel/internal/budget"
	"github.com/satchel-app/satchel/internal/cli"
	"github.com/satchel-app/satchel/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories",
		Long:  `List, add, update, and delete the categories expenses are assigned to.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			categories := a.store.Categories()
			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'satchel categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Icon"),
				cli.HeaderStyle.Render("Allocated"),
				cli.HeaderStyle.Render("Spent"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 12),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10))

			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s %s\t%s\t%.2f\t%.2f\n",
					shortID(cat.ID),
					cli.Swatch(cat.Color), cat.Name,
					cat.Icon,
					cat.Allocated,
					a.store.CategorySpend(cat.ID))
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var form model.CategoryForm

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Create a new spending category.

Color must be one of the preset #RRGGBB codes and icon one of the preset
icon names; values outside those sets are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			form.Name = args[0]

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			cat, err := a.store.AddCategory(form)
			if err != nil {
				return renderOpError(err)
			}
			a.persist(ctx)

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Created category %q (ID: %s)", cat.Name, shortID(cat.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Description, "description", "", "optional description")
	cmd.Flags().StringVar(&form.Color, "color", "#3B82F6", "category color (#RRGGBB, from the preset palette)")
	cmd.Flags().StringVar(&form.Icon, "icon", "Wallet", "category icon name")
	cmd.Flags().Float64Var(&form.Allocated, "allocated", 0, "amount of the budget earmarked for this category")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name        string
		description string
		color       string
		icon        string
		allocated   float64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing category",
		Long: `Replace the editable fields of a category. Flags that are not given keep
their current values; the id and creation time never change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			id, err := resolveCategoryID(a.store, args[0])
			if err != nil {
				return err
			}
			current, err := a.store.Category(id)
			if err != nil {
				return err
			}

			form := model.CategoryForm{
				Name:        current.Name,
				Description: current.Description,
				Color:       current.Color,
				Icon:        current.Icon,
				Allocated:   current.Allocated,
			}
			if cmd.Flags().Changed("name") {
				form.Name = name
			}
			if cmd.Flags().Changed("description") {
				form.Description = description
			}
			if cmd.Flags().Changed("color") {
				form.Color = color
			}
			if cmd.Flags().Changed("icon") {
				form.Icon = icon
			}
			if cmd.Flags().Changed("allocated") {
				form.Allocated = allocated
			}

			cat, err := a.store.UpdateCategory(id, form)
			if err != nil {
				return renderOpError(err)
			}
			a.persist(ctx)

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&color, "color", "", "new color (#RRGGBB, from the preset palette)")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon name")
	cmd.Flags().Float64Var(&allocated, "allocated", 0, "new allocation")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var (
		reassignTo string
		skipPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. If expenses still reference it the deletion is
rejected; pass --reassign-to to move them to another category first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			id, err := resolveCategoryID(a.store, args[0])
			if err != nil {
				return err
			}
			cat, err := a.store.Category(id)
			if err != nil {
				return err
			}

			check := budget.CheckDeletable(id, a.store.Expenses())
			if !check.CanDelete && reassignTo == "" {
				return renderOpError(&budget.CategoryInUseError{ExpenseCount: check.ExpenseCount})
			}

			if !skipPrompt {
				prompt := fmt.Sprintf("Delete category %q?", cat.Name)
				if !check.CanDelete {
					prompt = fmt.Sprintf("Move %d expense(s) and delete category %q?", check.ExpenseCount, cat.Name)
				}
				if !cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			if !check.CanDelete {
				toID, resolveErr := resolveCategoryID(a.store, reassignTo)
				if resolveErr != nil {
					return resolveErr
				}
				moved, reassignErr := a.store.ReassignExpenses(id, toID)
				if reassignErr != nil {
					return renderOpError(reassignErr)
				}
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Moved %d expense(s).", moved)))
			}

			if err := a.store.DeleteCategory(id); err != nil {
				return renderOpError(err)
			}
			a.persist(ctx)

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&reassignTo, "reassign-to", "", "category to move remaining expenses to before deleting")
	cmd.Flags().BoolVar(&skipPrompt, "yes", false, "skip the confirmation prompt")

	return cmd
}

// resolveCategoryID accepts a full id, a unique id prefix, or an exact
// (case-insensitive) category name.
func resolveCategoryID(store *budget.Store, ref string) (string, error) {
	var matches []string
	for _, cat := range store.Categories() {
		switch {
		case cat.ID == ref:
			return cat.ID, nil
		case strings.EqualFold(cat.Name, ref):
			return cat.ID, nil
		case strings.HasPrefix(cat.ID, ref):
			matches = append(matches, cat.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no category matches %q", ref)
	default:
		return "", fmt.Errorf("%q is ambiguous: %d categories match", ref, len(matches))
	}
}

// shortID trims a UUID down to a display-friendly prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
