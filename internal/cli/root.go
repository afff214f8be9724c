package cli

import (
	"github.com/alexanderramin/encore/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Budget   service.BudgetService
	Venues   service.VenueService
	Schedule service.ScheduleService
	WorkLog  service.WorkLogService
	Sales    service.SalesService
	Balance  service.BalanceService
	Import   service.ImportService

	// Currency is the symbol money is rendered with.
	Currency string
	// Labels overrides budget source display labels.
	Labels map[string]string

	// IsInteractive is true when stdin is a terminal, enabling huh prompts
	// for arguments left off the command line.
	IsInteractive bool
}

func (a *App) currency() string {
	if a.Currency == "" {
		return "$"
	}
	return a.Currency
}

// NewRootCmd creates the top-level "encore" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "encore",
		Short:         "Budget and revenue projections for arts projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newBudgetCmd(app),
		newVenueCmd(app),
		newEventCmd(app),
		newTicketCmd(app),
		newTaskCmd(app),
		newActivityCmd(app),
		newSaleCmd(app),
		newBalanceCmd(app),
		newReportCmd(app),
	)

	return root
}
