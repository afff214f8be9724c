package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSaleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Track retail sales (merchandise, books, concessions)",
	}

	cmd.AddCommand(
		newSaleSessionCmd(app),
		newSaleRecordCmd(app),
		newSaleListCmd(app),
		newSaleRemoveCmd(app),
	)

	return cmd
}

func newSaleSessionCmd(app *App) *cobra.Command {
	var name, event string
	var expected decimal.Decimal

	cmd := &cobra.Command{
		Use:   "session PROJECT",
		Short: "Open a sale session for the project or one of its occurrences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			s := &domain.SaleSession{
				Name:            name,
				AssociationType: domain.AssociationProject,
				ProjectID:       p.ID,
				ExpectedRevenue: expected,
			}
			if event != "" {
				s.AssociationType = domain.AssociationEvent
				if s.EventID, err = resolveOccurrenceID(ctx, app, p.ID, event); err != nil {
					return err
				}
			}
			if err := app.Sales.CreateSession(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened sale session %s (%s)\n", s.Name, shortRef(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Session name")
	cmd.Flags().StringVar(&event, "event", "", "Occurrence ID or prefix; omit for a project-wide session")
	decimalFlag(cmd.Flags(), &expected, "expected", "Expected revenue")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSaleRecordCmd(app *App) *cobra.Command {
	var total decimal.Decimal
	var at string

	cmd := &cobra.Command{
		Use:   "record PROJECT SESSION",
		Short: "Record a sales transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			sessionID, err := resolveSessionID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			recorded, err := parseOptionalDate("date", at)
			if err != nil {
				return err
			}
			tx := &domain.SalesTransaction{SaleSessionID: sessionID, Total: total, RecordedAt: recorded}
			if err := app.Sales.RecordTransaction(ctx, tx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", formatter.Money(tx.Total, app.currency()))
			return nil
		},
	}

	decimalFlag(cmd.Flags(), &total, "total", "Transaction total")
	cmd.Flags().StringVar(&at, "date", "", "Date (YYYY-MM-DD), defaults to now")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func newSaleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List sale sessions with recorded totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			sessions, err := app.Sales.ListSessions(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sale sessions.")
				return nil
			}
			txs, err := app.Sales.ListTransactions(ctx, p.ID)
			if err != nil {
				return err
			}
			actuals := make(map[string]decimal.Decimal, len(sessions))
			for _, tx := range txs {
				actuals[tx.SaleSessionID] = actuals[tx.SaleSessionID].Add(tx.Total)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionList(sessions, actuals, app.currency()))
			return nil
		},
	}
}

func newSaleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT SESSION",
		Short: "Remove a sale session and its transactions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveSessionID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.Sales.DeleteSession(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed sale session %s\n", shortRef(id))
			return nil
		},
	}
}
