// Package report lays out the final project report: a fixed sequence of
// sections built from a balance summary, rendered to text by the CLI
// formatter and to a spreadsheet by WriteXLSX.
package report

import (
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/projection"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Section titles, in report order.
const (
	SectionRevenue  = "Revenue"
	SectionExpenses = "Expenses"
	SectionTotals   = "Totals"
	SectionStreams  = "Derived streams"
)

// RowKind distinguishes how a row is emphasised.
type RowKind int

const (
	RowLine RowKind = iota
	RowCategory
	RowTotal
)

// Row is one projected/actual pair.
type Row struct {
	Label     string
	Kind      RowKind
	Projected decimal.Decimal
	Actual    decimal.Decimal
	HasActual bool
	Note      string
}

// StatKind selects how a Stat value is formatted.
type StatKind int

const (
	StatMoney StatKind = iota
	StatCount
	StatPercent
)

// Stat is a single derived figure. Percent values are fractions.
type Stat struct {
	Label string
	Kind  StatKind
	Value decimal.Decimal
}

type Section struct {
	Title string
	Rows  []Row
}

type Report struct {
	ProjectName string
	ShortID     string
	Sections    []Section
	Streams     []Stat
}

// Build lays out the report for project from summary. Sections always appear
// in the same order, whether or not they hold any lines.
func Build(s projection.BalanceSummary, project *domain.Project) Report {
	r := Report{
		ProjectName: project.Name,
		ShortID:     project.DisplayID(),
	}

	revenue := Section{Title: SectionRevenue}
	for _, ct := range s.Revenues {
		revenue.Rows = append(revenue.Rows, categoryRows(ct)...)
	}
	if !s.LegacySales.IsZero() {
		revenue.Rows = append(revenue.Rows, Row{
			Label:     "Manual sales lines",
			Projected: s.LegacySales,
			Note:      "superseded by recorded sales, not counted",
		})
	}
	revenue.Rows = append(revenue.Rows, Row{
		Label:     "Total revenue",
		Kind:      RowTotal,
		Projected: s.TotalRevenue,
		Actual:    s.ActualRevenue,
		HasActual: true,
	})

	expenses := Section{Title: SectionExpenses}
	for _, ct := range s.Expenses {
		expenses.Rows = append(expenses.Rows, categoryRows(ct)...)
	}
	for _, id := range s.UnattributedIDs() {
		expenses.Rows = append(expenses.Rows, Row{
			Label:     "Unattributed actuals",
			Projected: decimal.Zero,
			Actual:    s.Unattributed[id],
			HasActual: true,
			Note:      "budget line " + id + " no longer exists",
		})
	}
	expenses.Rows = append(expenses.Rows, Row{
		Label:     "Total expenses",
		Kind:      RowTotal,
		Projected: s.TotalExpenses,
		Actual:    s.ActualExpenses,
		HasActual: true,
	})

	totals := Section{Title: SectionTotals, Rows: []Row{
		{Label: "Total revenue", Projected: s.TotalRevenue, Actual: s.ActualRevenue, HasActual: true},
		{Label: "Total expenses", Projected: s.TotalExpenses, Actual: s.ActualExpenses, HasActual: true},
		{Label: "Balance", Kind: RowTotal, Projected: s.Balance, Actual: s.ActualBalance, HasActual: true},
		{Label: "Approved revenue", Projected: s.ApprovedRevenue, Note: "approved grants and contributions, recorded sales, tickets"},
	}}

	r.Sections = []Section{revenue, expenses, totals}
	r.Streams = []Stat{
		{Label: "Venue rental", Kind: StatMoney, Value: s.Venue.Total},
		{Label: "Presentations", Kind: StatCount, Value: decimal.NewFromInt(int64(s.Tickets.NumberOfPresentations))},
		{Label: "Average % sold", Kind: StatPercent, Value: s.Tickets.AveragePctSold},
		{Label: "Average venue capacity", Kind: StatCount, Value: s.Tickets.AverageVenueCapacity},
		{Label: "Average ticket price", Kind: StatMoney, Value: s.Tickets.AverageTicketPrice},
		{Label: "Projected audience", Kind: StatCount, Value: decimal.NewFromInt(int64(s.Tickets.ProjectedAudience))},
		{Label: "Projected ticket revenue", Kind: StatMoney, Value: s.Tickets.ProjectedRevenue},
		{Label: "Estimated sales", Kind: StatMoney, Value: s.Sales.TotalEstimatedRevenue},
		{Label: "Actual sales", Kind: StatMoney, Value: s.Sales.TotalActualRevenue},
		{Label: "Paid labour (approved)", Kind: StatMoney, Value: s.Paid},
		{Label: "In-kind labour (approved)", Kind: StatMoney, Value: s.InKind},
	}
	return r
}

// Section returns the section titled title.
func (r Report) Section(title string) (Section, bool) {
	for _, sec := range r.Sections {
		if sec.Title == title {
			return sec, true
		}
	}
	return Section{}, false
}

func categoryRows(ct projection.CategoryTotal) []Row {
	head := Row{
		Label:     ct.Label,
		Kind:      RowCategory,
		Projected: ct.Projected,
		Actual:    ct.Actual,
		HasActual: true,
	}
	if !ct.Counted.Equal(ct.Projected) {
		head.Note = "actual counted toward totals"
	}
	rows := []Row{head}
	for _, l := range ct.Lines {
		row := Row{
			Label:     l.Label,
			Projected: l.Projected,
			Actual:    l.Actual,
			HasActual: l.HasActual,
		}
		if l.Status != "" {
			row.Note = string(l.Status)
		}
		rows = append(rows, row)
	}
	return rows
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders d with two decimals, thousands separators and the
// given currency symbol, e.g. -$1,100.00.
func FormatMoney(d decimal.Decimal, symbol string) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole := d.Truncate(0).IntPart()
	return sign + symbol + printer.Sprintf("%d", whole) + fixed[strings.LastIndexByte(fixed, '.'):]
}

// FormatStat renders a derived figure.
func FormatStat(st Stat, symbol string) string {
	switch st.Kind {
	case StatCount:
		return printer.Sprintf("%d", st.Value.Round(0).IntPart())
	case StatPercent:
		return st.Value.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	default:
		return FormatMoney(st.Value, symbol)
	}
}
