package projection

import (
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
)

// TicketOfferingLine is the projection for one ticket offering.
type TicketOfferingLine struct {
	OfferingID   string
	OccurrenceID string
	Name         string
	Price        decimal.Decimal
	Capacity     int
	SoldCount    int
	// PctSold is SoldCount/Capacity as a fraction, zero when capacity is zero.
	PctSold          decimal.Decimal
	ProjectedRevenue decimal.Decimal
}

// TicketStats summarises projected ticket revenue for a project.
// Averages are taken over offerings, not occurrences.
type TicketStats struct {
	NumberOfPresentations int
	AveragePctSold        decimal.Decimal
	AverageVenueCapacity  decimal.Decimal
	AverageTicketPrice    decimal.Decimal
	ProjectedAudience     int
	ProjectedRevenue      decimal.Decimal
	Offerings             []TicketOfferingLine
}

// AggregateTickets projects revenue as price × capacity for every offering
// assigned to a qualifying occurrence of projectID.
func AggregateTickets(projectID string, occurrences []domain.Occurrence, venues []domain.Venue, offerings []domain.TicketOffering) TicketStats {
	capacityByVenue := make(map[string]int, len(venues))
	for _, v := range venues {
		capacityByVenue[v.ID] = v.Capacity
	}

	qualifying := make(map[string]*domain.Occurrence)
	stats := TicketStats{
		AveragePctSold:       decimal.Zero,
		AverageVenueCapacity: decimal.Zero,
		AverageTicketPrice:   decimal.Zero,
		ProjectedRevenue:     decimal.Zero,
	}
	for i := range occurrences {
		o := &occurrences[i]
		if o.Qualifies(projectID) {
			qualifying[o.ID] = o
			stats.NumberOfPresentations++
		}
	}

	sumPct, sumCap, sumPrice := decimal.Zero, decimal.Zero, decimal.Zero
	for _, off := range offerings {
		o, ok := qualifying[off.OccurrenceID]
		if !ok {
			continue
		}
		capacity := off.CapacityOverride
		if capacity <= 0 {
			capacity = capacityByVenue[o.VenueID]
		}
		if capacity < 0 {
			capacity = 0
		}

		line := TicketOfferingLine{
			OfferingID:       off.ID,
			OccurrenceID:     off.OccurrenceID,
			Name:             off.Name,
			Price:            off.Price,
			Capacity:         capacity,
			SoldCount:        off.SoldCount,
			PctSold:          decimal.Zero,
			ProjectedRevenue: off.Price.Mul(decimal.NewFromInt(int64(capacity))),
		}
		if capacity > 0 {
			line.PctSold = decimal.NewFromInt(int64(off.SoldCount)).Div(decimal.NewFromInt(int64(capacity)))
		}

		stats.Offerings = append(stats.Offerings, line)
		stats.ProjectedAudience += capacity
		stats.ProjectedRevenue = stats.ProjectedRevenue.Add(line.ProjectedRevenue)
		sumPct = sumPct.Add(line.PctSold)
		sumCap = sumCap.Add(decimal.NewFromInt(int64(capacity)))
		sumPrice = sumPrice.Add(off.Price)
	}

	if n := len(stats.Offerings); n > 0 {
		count := decimal.NewFromInt(int64(n))
		stats.AveragePctSold = sumPct.Div(count)
		stats.AverageVenueCapacity = sumCap.Div(count)
		stats.AverageTicketPrice = sumPrice.Div(count)
	}
	return stats
}
