package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"occurrence"},
		Short:   "Manage a project's dated occurrences",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventStatusCmd(app),
		newEventRemoveCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var title, venue, start, end, startTime, endTime, status string
	var allDay, template bool
	var override costFlags

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Schedule an occurrence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			startDate, err := parseDate("start date", start)
			if err != nil {
				return err
			}
			endDate, err := parseOptionalDate("end date", end)
			if err != nil {
				return err
			}

			o := &domain.Occurrence{
				ProjectID:  p.ID,
				Title:      title,
				Status:     domain.OccurrenceStatus(status),
				StartDate:  startDate,
				EndDate:    endDate,
				StartTime:  startTime,
				EndTime:    endTime,
				IsAllDay:   allDay,
				IsTemplate: template,
			}
			if venue != "" {
				if o.VenueID, err = resolveVenueID(ctx, app, venue); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("override-cost-type") {
				m := override.model()
				o.VenueCostOverride = &m
			}

			if err := app.Schedule.CreateOccurrence(ctx, o); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s on %s (%s)\n",
				o.Title, formatter.DateRange(o.StartDate, o.EndDate), shortRef(o.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Occurrence title")
	cmd.Flags().StringVar(&venue, "venue", "", "Venue ID or prefix")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD), defaults to the start date")
	cmd.Flags().StringVar(&startTime, "start-time", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "End time (HH:MM)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Runs all day")
	cmd.Flags().BoolVar(&template, "template", false, "Recurring-series template; never counted")
	cmd.Flags().StringVar(&status, "status", "", "Status (scheduled|confirmed|completed|pending|cancelled)")
	override.register(cmd.Flags(), "override-", "Per-occurrence venue")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's occurrences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			occs, err := app.Schedule.ListOccurrences(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(occs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No occurrences scheduled.")
				return nil
			}
			venues, err := app.Venues.List(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(venues))
			for _, v := range venues {
				names[v.ID] = v.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOccurrenceList(occs, names))
			return nil
		},
	}
}

func newEventStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status PROJECT OCCURRENCE STATUS",
		Short: "Change an occurrence's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveOccurrenceID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.Schedule.SetOccurrenceStatus(ctx, id, domain.OccurrenceStatus(args[2])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Occurrence %s is now %s\n", shortRef(id), args[2])
			return nil
		},
	}
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT OCCURRENCE",
		Short: "Remove an occurrence and its ticket offerings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveOccurrenceID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.Schedule.DeleteOccurrence(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed occurrence %s\n", shortRef(id))
			return nil
		},
	}
}

func newTicketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage ticket offerings",
	}

	cmd.AddCommand(
		newTicketAddCmd(app),
		newTicketListCmd(app),
		newTicketSoldCmd(app),
		newTicketRemoveCmd(app),
	)

	return cmd
}

func newTicketAddCmd(app *App) *cobra.Command {
	var name string
	var price decimal.Decimal
	var capacity, sold int

	cmd := &cobra.Command{
		Use:   "add PROJECT OCCURRENCE",
		Short: "Offer a ticket tier for an occurrence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			occID, err := resolveOccurrenceID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			t := &domain.TicketOffering{
				OccurrenceID:     occID,
				Name:             name,
				Price:            price,
				CapacityOverride: capacity,
				SoldCount:        sold,
			}
			if err := app.Schedule.CreateOffering(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s tickets at %s (%s)\n",
				t.Name, formatter.Money(t.Price, app.currency()), shortRef(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "General", "Tier name")
	decimalFlag(cmd.Flags(), &price, "price", "Ticket price")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Seats for this tier; 0 uses the venue capacity")
	cmd.Flags().IntVar(&sold, "sold", 0, "Tickets sold so far")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newTicketListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's ticket offerings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			offerings, err := app.Schedule.ListOfferings(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(offerings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ticket offerings.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOfferingList(offerings, app.currency()))
			return nil
		},
	}
}

func newTicketSoldCmd(app *App) *cobra.Command {
	var sold int

	cmd := &cobra.Command{
		Use:   "sold PROJECT OFFERING",
		Short: "Record the tickets sold for an offering",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveOfferingID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.Schedule.RecordSold(ctx, id, sold); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d sold for %s\n", sold, shortRef(id))
			return nil
		},
	}

	cmd.Flags().IntVar(&sold, "count", 0, "Tickets sold")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

func newTicketRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT OFFERING",
		Short: "Remove a ticket offering",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveOfferingID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.Schedule.DeleteOffering(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed ticket offering %s\n", shortRef(id))
			return nil
		},
	}
}
