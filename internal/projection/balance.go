package projection

import (
	"sort"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
)

// Streams bundles the derived figures the balance folds in next to the
// manual budget.
type Streams struct {
	Venue   VenueCost
	Tickets TicketStats
	Sales   SalesSummary
	Actuals Actuals
}

// EmptyStreams returns streams with every total at zero.
func EmptyStreams() Streams {
	return Streams{
		Venue:   VenueCost{Total: decimal.Zero},
		Tickets: AggregateTickets("", nil, nil, nil),
		Sales:   AggregateSales("", nil, nil, nil),
		Actuals: ComputeActuals(nil, nil),
	}
}

// LineSummary is one display line of a category. Items sharing a source are
// merged into a single line; ItemIDs lists every merged item.
type LineSummary struct {
	ItemIDs   []string
	Source    string
	Label     string
	Status    domain.ItemStatus
	Projected decimal.Decimal
	Actual    decimal.Decimal
	// Derived is the part of Actual that comes from approved time.
	Derived decimal.Decimal
	// HasActual is false when neither a manual nor a derived actual exists.
	HasActual bool
}

// CategoryTotal is a category subtotal. Counted is the amount the category
// adds to the projected grand total, which for the derived and live categories
// is not the same as the sum of its line items.
type CategoryTotal struct {
	Category  domain.Category
	Label     string
	Projected decimal.Decimal
	Actual    decimal.Decimal
	Counted   decimal.Decimal
	Lines     []LineSummary
}

// BalanceSummary is the projected vs. actual balance sheet of one project.
type BalanceSummary struct {
	Revenues []CategoryTotal
	Expenses []CategoryTotal

	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal

	ActualRevenue  decimal.Decimal
	ActualExpenses decimal.Decimal
	ActualBalance  decimal.Decimal

	// ApprovedRevenue counts only revenue lines whose funding decision is
	// approved, plus the live streams.
	ApprovedRevenue decimal.Decimal

	// Unattributed holds approved-time actuals whose task points at a budget
	// line that no longer exists, keyed by the dangling budget item id.
	Unattributed      map[string]decimal.Decimal
	UnattributedTotal decimal.Decimal

	// LegacySales is the manual "sales" category. It is shown for reference
	// but never counted; live sales replace it.
	LegacySales decimal.Decimal

	Sales   SalesSummary
	Tickets TicketStats
	Venue   VenueCost
	Paid    decimal.Decimal
	InKind  decimal.Decimal
}

// SalesFigures returns the live sales totals to compare against the figures
// persisted on the project.
func (s BalanceSummary) SalesFigures() domain.SalesFigures {
	return s.Sales.Figures()
}

// Category returns the subtotal for c, if present.
func (s BalanceSummary) Category(c domain.Category) (CategoryTotal, bool) {
	for _, ct := range s.Revenues {
		if ct.Category == c {
			return ct, true
		}
	}
	for _, ct := range s.Expenses {
		if ct.Category == c {
			return ct, true
		}
	}
	return CategoryTotal{}, false
}

// ComputeBalance folds the manual budget and the derived streams into a
// balance sheet:
//
//	totalRevenue  = grants + live sales actual + fundraising + contributions + ticket projection
//	totalExpenses = six expense categories + venue projection
//	balance       = totalRevenue - totalExpenses
//
// It never fails; malformed or dangling data degrades to zero or to the
// unattributed bucket.
func ComputeBalance(budget domain.DetailedBudget, streams Streams, labels map[string]string) BalanceSummary {
	s := BalanceSummary{
		TotalRevenue:      decimal.Zero,
		TotalExpenses:     decimal.Zero,
		ActualRevenue:     decimal.Zero,
		ActualExpenses:    decimal.Zero,
		ApprovedRevenue:   decimal.Zero,
		Unattributed:      make(map[string]decimal.Decimal),
		UnattributedTotal: decimal.Zero,
		LegacySales:       domain.SumAmounts(budget.Revenues.Sales),
		Sales:             streams.Sales,
		Tickets:           streams.Tickets,
		Venue:             streams.Venue,
		Paid:              zeroIfUnset(streams.Actuals.Paid),
		InKind:            zeroIfUnset(streams.Actuals.InKind),
	}
	derived := streams.Actuals.ByBudgetItem

	for _, c := range domain.RevenueCategories {
		var ct CategoryTotal
		if c == domain.CategorySales {
			ct = liveSalesCategory(streams.Sales)
		} else {
			ct = itemizedCategory(c, budget.Items(c), nil, labels)
			ct.Counted = ct.Projected
			for _, l := range ct.Lines {
				if l.Status == domain.ItemApproved {
					s.ApprovedRevenue = s.ApprovedRevenue.Add(l.Projected)
				}
			}
		}
		s.Revenues = append(s.Revenues, ct)
	}
	tickets := CategoryTotal{
		Category:  domain.CategoryTickets,
		Label:     domain.CategoryLabel(domain.CategoryTickets),
		Projected: zeroIfUnset(streams.Tickets.ProjectedRevenue),
		Actual:    domain.DecimalOr(budget.Revenues.Tickets.ActualRevenue, decimal.Zero),
	}
	tickets.Counted = tickets.Projected
	s.Revenues = append(s.Revenues, tickets)

	attributed := make(map[string]bool)
	for _, c := range domain.ExpenseCategories {
		items := budget.Items(c)
		for _, it := range items {
			attributed[it.ID] = true
		}
		ct := itemizedCategory(c, items, derived, labels)
		ct.Counted = ct.Projected
		s.Expenses = append(s.Expenses, ct)
	}
	venue := CategoryTotal{
		Category:  domain.CategoryVenue,
		Label:     domain.CategoryLabel(domain.CategoryVenue),
		Projected: zeroIfUnset(streams.Venue.Total),
	}
	venue.Actual = venue.Projected
	venue.Counted = venue.Projected
	s.Expenses = append(s.Expenses, venue)

	for id, v := range derived {
		if attributed[id] {
			continue
		}
		s.Unattributed[id] = v
		s.UnattributedTotal = s.UnattributedTotal.Add(v)
	}

	for _, ct := range s.Revenues {
		s.TotalRevenue = s.TotalRevenue.Add(ct.Counted)
		s.ActualRevenue = s.ActualRevenue.Add(ct.Actual)
	}
	for _, ct := range s.Expenses {
		s.TotalExpenses = s.TotalExpenses.Add(ct.Counted)
		s.ActualExpenses = s.ActualExpenses.Add(ct.Actual)
	}
	s.ActualExpenses = s.ActualExpenses.Add(s.UnattributedTotal)
	s.ApprovedRevenue = s.ApprovedRevenue.Add(zeroIfUnset(streams.Sales.TotalActualRevenue)).Add(tickets.Projected)

	s.Balance = s.TotalRevenue.Sub(s.TotalExpenses)
	s.ActualBalance = s.ActualRevenue.Sub(s.ActualExpenses)
	return s
}

func liveSalesCategory(sales SalesSummary) CategoryTotal {
	ct := CategoryTotal{
		Category:  domain.CategorySales,
		Label:     domain.CategoryLabel(domain.CategorySales),
		Projected: zeroIfUnset(sales.TotalEstimatedRevenue),
		Actual:    zeroIfUnset(sales.TotalActualRevenue),
	}
	ct.Counted = ct.Actual
	for _, l := range sales.Breakdown {
		ct.Lines = append(ct.Lines, LineSummary{
			ItemIDs:   []string{l.SessionID},
			Label:     l.Label,
			Projected: l.Estimated,
			Actual:    l.Actual,
			Derived:   l.Actual,
			HasActual: l.TransactionCount > 0,
		})
	}
	return ct
}

// itemizedCategory builds the lines of an itemized category, merging items
// that share a source. A line's actual is the derived actual when approved
// time exists for any of its items, otherwise the manually entered actual.
func itemizedCategory(c domain.Category, items []domain.BudgetItem, derived map[string]decimal.Decimal, labels map[string]string) CategoryTotal {
	ct := CategoryTotal{
		Category:  c,
		Label:     domain.CategoryLabel(c),
		Projected: decimal.Zero,
		Actual:    decimal.Zero,
	}

	index := make(map[string]int)
	manual := make([]decimal.Decimal, 0, len(items))
	hasManual := make([]bool, 0, len(items))
	hasDerived := make([]bool, 0, len(items))
	for _, it := range items {
		i, ok := index[it.Source]
		if !ok {
			i = len(ct.Lines)
			index[it.Source] = i
			ct.Lines = append(ct.Lines, LineSummary{
				Source:    it.Source,
				Label:     domain.LabelFor(it.Source, labels),
				Status:    it.Status,
				Projected: decimal.Zero,
				Derived:   decimal.Zero,
			})
			manual = append(manual, decimal.Zero)
			hasManual = append(hasManual, false)
			hasDerived = append(hasDerived, false)
		}
		line := &ct.Lines[i]
		line.ItemIDs = append(line.ItemIDs, it.ID)
		line.Projected = line.Projected.Add(it.Amount)
		if it.ActualAmount.Valid {
			manual[i] = manual[i].Add(it.ActualAmount.Decimal)
			hasManual[i] = true
		}
		if v, ok := derived[it.ID]; ok {
			line.Derived = line.Derived.Add(v)
			hasDerived[i] = true
		}
		line.Status = mergeStatus(line.Status, it.Status)
	}

	for i := range ct.Lines {
		line := &ct.Lines[i]
		switch {
		case hasDerived[i]:
			line.Actual = line.Derived
			line.HasActual = true
		case hasManual[i]:
			line.Actual = manual[i]
			line.HasActual = true
		default:
			line.Actual = decimal.Zero
		}
		ct.Projected = ct.Projected.Add(line.Projected)
		ct.Actual = ct.Actual.Add(line.Actual)
	}
	return ct
}

// mergeStatus keeps the least certain status of merged revenue items.
func mergeStatus(a, b domain.ItemStatus) domain.ItemStatus {
	rank := map[domain.ItemStatus]int{
		"":                  0,
		domain.ItemApproved: 1,
		domain.ItemDenied:   2,
		domain.ItemPending:  3,
	}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// UnattributedIDs returns the dangling budget item ids in sorted order.
func (s BalanceSummary) UnattributedIDs() []string {
	ids := make([]string, 0, len(s.Unattributed))
	for id := range s.Unattributed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// zeroIfUnset normalises the zero value of decimal.Decimal, which has a nil
// mantissa, to decimal.Zero so summaries compare cleanly.
func zeroIfUnset(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return d
}
