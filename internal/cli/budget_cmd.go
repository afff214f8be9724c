package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/spf13/cobra"
)

func newBudgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Edit a project's detailed budget",
	}

	cmd.AddCommand(
		newBudgetShowCmd(app),
		newBudgetAddCmd(app),
		newBudgetUpdateCmd(app),
		newBudgetRemoveCmd(app),
		newBudgetTicketActualCmd(app),
	)

	return cmd
}

func newBudgetShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show the budget lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBudget(p.Budget, app.Labels, app.currency()))
			return nil
		},
	}
}

func newBudgetAddCmd(app *App) *cobra.Command {
	var amount, actual, description, status string

	cmd := &cobra.Command{
		Use:   "add PROJECT [CATEGORY SOURCE]",
		Short: "Attach a source to a budget section",
		Long: `Attach a source to a budget section. Each source may appear once per
section; adding it again changes nothing. When CATEGORY and SOURCE are
omitted on a terminal, they are asked for interactively.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			var categoryArg, source string
			switch {
			case len(args) == 3:
				categoryArg, source = args[1], args[2]
			case len(args) == 1 && app.IsInteractive:
				ans := budgetLineAnswers{Amount: amount}
				if err := budgetLineForm(app.Labels, &ans).Run(); err != nil {
					return err
				}
				categoryArg, source, amount = ans.Category, ans.Source, ans.Amount
			default:
				return fmt.Errorf("CATEGORY and SOURCE are required")
			}

			c, ok := domain.ParseCategory(categoryArg)
			if !ok {
				return fmt.Errorf("unknown budget category %q", categoryArg)
			}
			item, added, err := app.Budget.AddItem(ctx, p.ID, c, source)
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already has a %s line; nothing changed\n",
					domain.CategoryLabel(c), domain.LabelFor(source, app.Labels))
				return nil
			}

			edits := []struct {
				field domain.ItemField
				value string
				set   bool
			}{
				{domain.FieldDescription, description, description != ""},
				{domain.FieldAmount, amount, amount != ""},
				{domain.FieldActualAmount, actual, actual != ""},
				{domain.FieldStatus, status, status != "" && c.IsRevenue()},
			}
			for _, e := range edits {
				if !e.set {
					continue
				}
				if _, err := app.Budget.UpdateItem(ctx, p.ID, item.ID, e.field, e.value); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%s)\n",
				domain.LabelFor(source, app.Labels), domain.CategoryLabel(c), shortRef(item.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Projected amount")
	cmd.Flags().StringVar(&actual, "actual", "", "Actual amount")
	cmd.Flags().StringVar(&description, "description", "", "Line description")
	cmd.Flags().StringVar(&status, "status", "", "Funding status for revenue lines (pending|approved|denied)")

	return cmd
}

func newBudgetUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update PROJECT ITEM FIELD VALUE",
		Short: "Set one field of a budget line",
		Long: `Set one field of a budget line. FIELD is description, amount,
actualAmount or status. Amounts that do not parse are stored as zero; an
empty actualAmount clears it.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			itemID, err := resolveBudgetItemID(p.Budget, args[1])
			if err != nil {
				return err
			}
			field, ok := domain.ParseItemField(args[2])
			if !ok {
				return fmt.Errorf("unknown field %q (description|amount|actualAmount|status)", args[2])
			}
			changed, err := app.Budget.UpdateItem(ctx, p.ID, itemID, field, args[3])
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s of %s\n", field, shortRef(itemID))
			return nil
		},
	}
}

func newBudgetRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT ITEM",
		Short: "Remove a budget line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			itemID, err := resolveBudgetItemID(p.Budget, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Budget.RemoveItem(ctx, p.ID, itemID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed budget line %s\n", shortRef(itemID))
			return nil
		},
	}
}

func newBudgetTicketActualCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ticket-actual PROJECT VALUE",
		Short: "Record realised ticket revenue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Budget.SetTicketActualRevenue(ctx, p.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded ticket revenue for %s\n", p.DisplayID())
			return nil
		},
	}
}
