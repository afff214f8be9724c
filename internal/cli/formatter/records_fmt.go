package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
)

func FormatVenueList(venues []domain.Venue, symbol string) string {
	rows := make([][]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, []string{
			TruncID(v.ID),
			Bold(v.Name),
			fmt.Sprintf("%d", v.Capacity),
			CostLabel(v.Default, symbol),
		})
	}
	table := RenderTable([]string{"ID", "NAME", "CAPACITY", "COST"}, rows,
		AlignLeft, AlignLeft, AlignRight, AlignLeft)
	return RenderBox("Venues", table)
}

// FormatOccurrenceList renders occurrences with their resolved venue names.
// venues maps venue ID to name; an unknown ID is shown as removed.
func FormatOccurrenceList(occs []domain.Occurrence, venues map[string]string) string {
	rows := make([][]string, 0, len(occs))
	for _, o := range occs {
		venue := Dim("--")
		if o.VenueID != "" {
			if name, ok := venues[o.VenueID]; ok {
				venue = name
			} else {
				venue = Dim("(removed)")
			}
		}
		title := o.Title
		if o.IsTemplate {
			title += Dim(" (template)")
		}
		rows = append(rows, []string{
			TruncID(o.ID),
			title,
			DateRange(o.StartDate, o.EndDate),
			occurrenceTimes(o),
			venue,
			OccurrenceStatusPill(o.Status),
		})
	}
	table := RenderTable([]string{"ID", "TITLE", "DATES", "TIME", "VENUE", "STATUS"}, rows)
	return RenderBox("Schedule", table)
}

func occurrenceTimes(o domain.Occurrence) string {
	switch {
	case o.IsAllDay:
		return "all day"
	case o.StartTime == "" && o.EndTime == "":
		return Dim("--")
	default:
		return strings.TrimSpace(o.StartTime + "–" + o.EndTime)
	}
}

func FormatOfferingList(offerings []domain.TicketOffering, symbol string) string {
	rows := make([][]string, 0, len(offerings))
	for _, t := range offerings {
		capacity := Dim("venue")
		if t.CapacityOverride > 0 {
			capacity = fmt.Sprintf("%d", t.CapacityOverride)
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			TruncID(t.OccurrenceID),
			t.Name,
			Money(t.Price, symbol),
			capacity,
			fmt.Sprintf("%d", t.SoldCount),
		})
	}
	table := RenderTable([]string{"ID", "OCCURRENCE", "NAME", "PRICE", "CAPACITY", "SOLD"}, rows,
		AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight)
	return RenderBox("Tickets", table)
}

// FormatTaskList renders tasks with their approved hours and cost. hours maps
// task ID to approved hours.
func FormatTaskList(tasks []domain.Task, hours map[string]decimal.Decimal, labels map[string]string, budget domain.DetailedBudget, symbol string) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		line := Dim("--")
		if t.BudgetItemID != "" {
			if _, item, ok := budget.FindItem(t.BudgetItemID); ok {
				line = domain.LabelFor(item.Source, labels)
			} else {
				line = StyleRed.Render("(missing line)")
			}
		}
		h := hours[t.ID]
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Title),
			string(t.WorkType),
			Money(t.HourlyRate, symbol) + "/h",
			h.String() + "h",
			Money(h.Mul(t.HourlyRate), symbol),
			line,
		})
	}
	table := RenderTable([]string{"ID", "TASK", "TYPE", "RATE", "APPROVED", "COST", "BUDGET LINE"}, rows,
		AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft)
	return RenderBox("Tasks", table)
}

// FormatActivityList renders logged activities. titles maps task ID to title.
func FormatActivityList(activities []domain.Activity, titles map[string]string) string {
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []string{
			TruncID(a.ID),
			HumanDate(a.Date),
			titles[a.TaskID],
			a.Hours.String() + "h",
			ActivityStatusPill(a.Status),
			Dim(a.Note),
		})
	}
	table := RenderTable([]string{"ID", "DATE", "TASK", "HOURS", "STATUS", "NOTE"}, rows,
		AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft)
	return RenderBox("Activities", table)
}

// FormatSessionList renders sale sessions with their recorded totals.
// actuals maps session ID to the sum of its transactions.
func FormatSessionList(sessions []domain.SaleSession, actuals map[string]decimal.Decimal, symbol string) string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		assoc := "project"
		if s.AssociationType == domain.AssociationEvent {
			assoc = "event " + TruncID(s.EventID)
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Name),
			assoc,
			Money(s.ExpectedRevenue, symbol),
			Money(actuals[s.ID], symbol),
		})
	}
	table := RenderTable([]string{"ID", "SESSION", "FOR", "EXPECTED", "RECORDED"}, rows,
		AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight)
	return RenderBox("Sales", table)
}
