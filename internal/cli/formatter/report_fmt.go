package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/report"
	"github.com/shopspring/decimal"
)

// FormatReport renders a project report as aligned text sections followed by
// the derived stream figures.
func FormatReport(r report.Report, symbol string) string {
	var b strings.Builder

	for _, sec := range r.Sections {
		b.WriteString(Header(sec.Title) + "\n")
		rows := make([][]string, 0, len(sec.Rows))
		for _, row := range sec.Rows {
			rows = append(rows, reportRow(sec.Title, row, symbol))
		}
		b.WriteString(RenderTable(
			[]string{"", "PROJECTED", "ACTUAL", ""},
			rows,
			AlignLeft, AlignRight, AlignRight, AlignLeft,
		))
		b.WriteString("\n")
	}

	b.WriteString(Header(report.SectionStreams) + "\n")
	stats := make([][]string, 0, len(r.Streams))
	for _, st := range r.Streams {
		stats = append(stats, []string{st.Label, report.FormatStat(st, symbol)})
	}
	b.WriteString(RenderTable([]string{"", "VALUE"}, stats, AlignLeft, AlignRight))

	title := r.ProjectName
	if r.ShortID != "" {
		title = fmt.Sprintf("%s [%s]", r.ProjectName, r.ShortID)
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

func reportRow(section string, row report.Row, symbol string) []string {
	label := row.Label
	money := func(d decimal.Decimal) string { return Money(d, symbol) }

	switch row.Kind {
	case report.RowCategory:
		label = Bold(label)
	case report.RowTotal:
		label = Bold(label)
		if section == report.SectionTotals {
			money = func(d decimal.Decimal) string { return SignedMoney(d, symbol) }
		}
	default:
		label = "  " + label
	}

	actual := Dim("--")
	if row.HasActual {
		actual = money(row.Actual)
	}
	return []string{label, money(row.Projected), actual, Dim(row.Note)}
}

// FormatBalanceHeadline is the one-line summary printed after commands that
// change the balance.
func FormatBalanceHeadline(name string, balance, actual decimal.Decimal, symbol string) string {
	return fmt.Sprintf("%s  %s %s  %s %s",
		Bold(name),
		Dim("balance"), SignedMoney(balance, symbol),
		Dim("actual"), SignedMoney(actual, symbol))
}
