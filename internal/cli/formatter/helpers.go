package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/report"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate formats a calendar date, or "--" for the zero time.
func HumanDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Jan 2, 2006")
}

// DateRange renders a single date or an inclusive range.
func DateRange(start, end time.Time) string {
	if end.IsZero() || end.Equal(start) {
		return HumanDate(start)
	}
	if start.Year() == end.Year() {
		return start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
	}
	return HumanDate(start) + " – " + HumanDate(end)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Money renders an amount with the given currency symbol.
func Money(d decimal.Decimal, symbol string) string {
	return report.FormatMoney(d, symbol)
}

// SignedMoney renders an amount colored by its sign.
func SignedMoney(d decimal.Decimal, symbol string) string {
	return BalanceStyle(d).Render(Money(d, symbol))
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// ItemStatusPill renders the funding decision on a revenue line.
func ItemStatusPill(status domain.ItemStatus) string {
	switch status {
	case domain.ItemApproved:
		return StyleGreen.Render("✔ approved")
	case domain.ItemDenied:
		return StyleRed.Render("✖ denied")
	case domain.ItemPending:
		return StyleYellow.Render("○ pending")
	default:
		return ""
	}
}

func OccurrenceStatusPill(status domain.OccurrenceStatus) string {
	switch status {
	case domain.OccurrenceConfirmed:
		return StyleGreen.Render("● confirmed")
	case domain.OccurrenceCompleted:
		return StyleDim.Render("✔ completed")
	case domain.OccurrencePending:
		return StyleYellow.Render("○ pending")
	case domain.OccurrenceCancelled:
		return StyleRed.Render("✖ cancelled")
	default:
		return StyleBlue.Render("○ scheduled")
	}
}

func ActivityStatusPill(status domain.ActivityStatus) string {
	if status == domain.ActivityApproved {
		return StyleGreen.Render("✔ approved")
	}
	return StyleYellow.Render("○ pending")
}

// CostLabel describes a venue cost model, e.g. "$100.00 per day".
func CostLabel(m domain.CostModel, symbol string) string {
	switch m.Type {
	case domain.CostFree, "":
		return Dim("free")
	case domain.CostInKind:
		return StylePurple.Render("in kind ") + Money(m.Amount, symbol)
	}
	switch m.Period {
	case domain.PeriodPerDay:
		return Money(m.Amount, symbol) + " per day"
	case domain.PeriodPerHour:
		return Money(m.Amount, symbol) + " per hour"
	default:
		return Money(m.Amount, symbol) + " flat"
	}
}
