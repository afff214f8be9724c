package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/report"
	"github.com/alexanderramin/encore/internal/service"
	"github.com/spf13/cobra"
)

// computeBalance runs the balance and reports a failed sales write-back as a
// warning: the computed figures are still valid.
func computeBalance(cmd *cobra.Command, app *App, ref string) (*service.BalanceResult, error) {
	ctx := context.Background()
	p, err := resolveProject(ctx, app, ref)
	if err != nil {
		return nil, err
	}
	res, err := app.Balance.Compute(ctx, p.ID)
	if err != nil {
		if res == nil || !errors.Is(err, service.ErrPersistence) {
			return nil, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return res, nil
}

func newBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance PROJECT",
		Short: "Compute the projected and actual balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := computeBalance(cmd, app, args[0])
			if err != nil {
				return err
			}
			s := res.Summary
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatBalanceHeadline(res.Project.Name, s.Balance, s.ActualBalance, app.currency()))
			fmt.Fprintf(out, "%s %s  %s %s  %s %s\n",
				formatter.Dim("revenue"), formatter.Money(s.TotalRevenue, app.currency()),
				formatter.Dim("expenses"), formatter.Money(s.TotalExpenses, app.currency()),
				formatter.Dim("approved revenue"), formatter.Money(s.ApprovedRevenue, app.currency()))
			if res.SalesWritten {
				fmt.Fprintln(out, formatter.Dim("sales figures updated"))
			}
			return nil
		},
	}
}

func newReportCmd(app *App) *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "report PROJECT",
		Short: "Print the final report, or write it as a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := computeBalance(cmd, app, args[0])
			if err != nil {
				return err
			}
			r := report.Build(res.Summary, res.Project)

			if xlsxPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReport(r, app.currency()))
				return nil
			}

			f, err := os.Create(xlsxPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", xlsxPath, err)
			}
			if err := report.WriteXLSX(f, r, app.currency()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", xlsxPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote report to %s\n", xlsxPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an .xlsx workbook to this path")

	return cmd
}
