package projection

import (
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
)

// SalesLine is the estimated vs. actual revenue of one sale session.
type SalesLine struct {
	SessionID        string
	Label            string
	Estimated        decimal.Decimal
	Actual           decimal.Decimal
	TransactionCount int
}

type SalesSummary struct {
	TotalEstimatedRevenue decimal.Decimal
	TotalActualRevenue    decimal.Decimal
	Breakdown             []SalesLine
}

// Figures returns the totals in the shape persisted on the project record.
func (s SalesSummary) Figures() domain.SalesFigures {
	return domain.SalesFigures{Estimated: s.TotalEstimatedRevenue, Actual: s.TotalActualRevenue}
}

// AggregateSales joins the sale sessions of projectID with their
// transactions. A session belongs to the project when it is associated with
// the project directly or with any of the project's occurrences, whatever
// that occurrence's status.
func AggregateSales(projectID string, occurrences []domain.Occurrence, sessions []domain.SaleSession, transactions []domain.SalesTransaction) SalesSummary {
	projectEvents := make(map[string]string)
	for _, o := range occurrences {
		if o.ProjectID == projectID {
			projectEvents[o.ID] = o.Title
		}
	}

	type txAgg struct {
		total decimal.Decimal
		count int
	}
	bySession := make(map[string]txAgg)
	for _, tx := range transactions {
		agg := bySession[tx.SaleSessionID]
		if agg.count == 0 {
			agg.total = decimal.Zero
		}
		agg.total = agg.total.Add(tx.Total)
		agg.count++
		bySession[tx.SaleSessionID] = agg
	}

	summary := SalesSummary{
		TotalEstimatedRevenue: decimal.Zero,
		TotalActualRevenue:    decimal.Zero,
	}
	for _, s := range sessions {
		label := s.Name
		switch s.AssociationType {
		case domain.AssociationProject:
			if s.ProjectID != projectID {
				continue
			}
		case domain.AssociationEvent:
			title, ok := projectEvents[s.EventID]
			if !ok {
				continue
			}
			if title != "" {
				label = s.Name + " - " + title
			}
		default:
			continue
		}

		line := SalesLine{
			SessionID: s.ID,
			Label:     label,
			Estimated: s.ExpectedRevenue,
			Actual:    decimal.Zero,
		}
		if agg, ok := bySession[s.ID]; ok {
			line.Actual = agg.total
			line.TransactionCount = agg.count
		}
		summary.Breakdown = append(summary.Breakdown, line)
		summary.TotalEstimatedRevenue = summary.TotalEstimatedRevenue.Add(line.Estimated)
		summary.TotalActualRevenue = summary.TotalActualRevenue.Add(line.Actual)
	}
	return summary
}
