package formatter

import (
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
)

// FormatBudget renders every itemized category of b with its lines. Empty
// categories are listed dimmed so the fixed shape of the budget stays visible.
func FormatBudget(b domain.DetailedBudget, labels map[string]string, symbol string) string {
	var sb strings.Builder

	sb.WriteString(Header("Revenue") + "\n")
	for _, c := range domain.RevenueCategories {
		writeBudgetCategory(&sb, b, c, labels, symbol)
	}
	ticketActual := Dim("not entered")
	if b.Revenues.Tickets.ActualRevenue.Valid {
		ticketActual = Money(b.Revenues.Tickets.ActualRevenue.Decimal, symbol)
	}
	sb.WriteString(Bold(domain.CategoryLabel(domain.CategoryTickets)) + "  " +
		Dim("projected from offerings, actual ") + ticketActual + "\n\n")

	sb.WriteString(Header("Expenses") + "\n")
	for _, c := range domain.ExpenseCategories {
		writeBudgetCategory(&sb, b, c, labels, symbol)
	}

	return RenderBox("Budget", strings.TrimRight(sb.String(), "\n"))
}

func writeBudgetCategory(sb *strings.Builder, b domain.DetailedBudget, c domain.Category, labels map[string]string, symbol string) {
	items := b.Items(c)
	if len(items) == 0 {
		sb.WriteString(Dim(domain.CategoryLabel(c)+"  (none)") + "\n")
		return
	}

	sb.WriteString(Bold(domain.CategoryLabel(c)) + "\n")
	headers := []string{"ID", "SOURCE", "DESCRIPTION", "PROJECTED", "ACTUAL"}
	align := []Alignment{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight}
	if c.IsRevenue() {
		headers = append(headers, "STATUS")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		actual := Dim("--")
		if it.ActualAmount.Valid {
			actual = Money(it.ActualAmount.Decimal, symbol)
		}
		row := []string{
			TruncID(it.ID),
			domain.LabelFor(it.Source, labels),
			it.Description,
			Money(it.Amount, symbol),
			actual,
		}
		if c.IsRevenue() {
			row = append(row, ItemStatusPill(it.Status))
		}
		rows = append(rows, row)
	}
	sb.WriteString(RenderTable(headers, rows, align...) + "\n")
}
