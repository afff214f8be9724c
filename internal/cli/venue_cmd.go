package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newVenueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venue",
		Short: "Manage venues shared by all projects",
	}

	cmd.AddCommand(
		newVenueAddCmd(app),
		newVenueListCmd(app),
		newVenueRemoveCmd(app),
	)

	return cmd
}

// costFlags binds --cost-type, --cost and --period under an optional prefix.
type costFlags struct {
	costType string
	amount   decimal.Decimal
	period   string
}

func (c *costFlags) register(fs *pflag.FlagSet, prefix, what string) {
	fs.StringVar(&c.costType, prefix+"cost-type", "", what+" cost type (free|rented|in_kind)")
	decimalFlag(fs, &c.amount, prefix+"cost", what+" cost amount")
	fs.StringVar(&c.period, prefix+"period", "", what+" billing period (flat_rate|per_day|per_hour)")
}

func (c *costFlags) model() domain.CostModel {
	return domain.CostModel{
		Type:   domain.CostType(c.costType),
		Amount: c.amount,
		Period: domain.CostPeriod(c.period),
	}
}

func newVenueAddCmd(app *App) *cobra.Command {
	var name string
	var capacity int
	var cost costFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a venue",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := &domain.Venue{Name: name, Capacity: capacity, Default: cost.model()}
			if err := app.Venues.Create(context.Background(), v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added venue %s (%s)\n", v.Name, shortRef(v.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Venue name")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Seated capacity")
	cost.register(cmd.Flags(), "", "Default")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newVenueListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List venues",
		RunE: func(cmd *cobra.Command, args []string) error {
			venues, err := app.Venues.List(context.Background())
			if err != nil {
				return err
			}
			if len(venues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No venues found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVenueList(venues, app.currency()))
			return nil
		},
	}
}

func newVenueRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove VENUE",
		Short: "Remove a venue; its occurrences keep running without one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveVenueID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Venues.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed venue %s\n", shortRef(id))
			return nil
		},
	}
}
