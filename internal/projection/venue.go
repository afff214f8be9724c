// Package projection derives revenue and expense streams from a project's
// schedule, time tracking and retail data, and folds them together with the
// manual budget into a balance sheet. Everything here is pure: inputs are
// in-memory snapshots and nothing performs I/O.
package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
)

// OvernightPolicy decides how a timed occurrence whose end clock time is
// earlier than its start clock time is billed per hour.
type OvernightPolicy string

const (
	// OvernightClamp treats the negative span as zero hours.
	OvernightClamp OvernightPolicy = "clamp"
	// OvernightWrap assumes the occurrence runs past midnight and adds 24h.
	OvernightWrap OvernightPolicy = "wrap"
)

// VenueOptions tunes per-hour billing of venue rentals.
type VenueOptions struct {
	// AllDayHours is the billable length of an all-day occurrence.
	AllDayHours decimal.Decimal
	Overnight   OvernightPolicy
}

// DefaultVenueOptions bills eight hours per all-day occurrence and clamps
// overnight spans to zero.
func DefaultVenueOptions() VenueOptions {
	return VenueOptions{
		AllDayHours: decimal.NewFromInt(8),
		Overnight:   OvernightClamp,
	}
}

// VenueCostLine is the cost contribution of a single qualifying occurrence.
type VenueCostLine struct {
	OccurrenceID string
	VenueID      string
	Title        string
	CostType     domain.CostType
	Period       domain.CostPeriod
	Rate         decimal.Decimal
	Days         int
	Hours        decimal.Decimal
	Cost         decimal.Decimal
	Note         string
}

// VenueCost is the projected rental total with one line per qualifying
// occurrence.
type VenueCost struct {
	Total decimal.Decimal
	Lines []VenueCostLine
}

// ProjectVenueCost totals the cash cost of renting facilities for every
// qualifying occurrence of projectID. Occurrences that cannot be costed
// (no venue, even with an override, or missing clock times) contribute zero
// and carry a note.
func ProjectVenueCost(projectID string, occurrences []domain.Occurrence, venues []domain.Venue, opts VenueOptions) VenueCost {
	byID := make(map[string]domain.Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
	}

	result := VenueCost{Total: decimal.Zero}
	for i := range occurrences {
		o := &occurrences[i]
		if !o.Qualifies(projectID) {
			continue
		}
		line := occurrenceCost(o, byID, opts)
		result.Total = result.Total.Add(line.Cost)
		result.Lines = append(result.Lines, line)
	}
	return result
}

func occurrenceCost(o *domain.Occurrence, venues map[string]domain.Venue, opts VenueOptions) VenueCostLine {
	line := VenueCostLine{
		OccurrenceID: o.ID,
		VenueID:      o.VenueID,
		Title:        o.Title,
		Cost:         decimal.Zero,
		Hours:        decimal.Zero,
	}

	venue, ok := venues[o.VenueID]
	if !ok {
		line.Note = "no venue"
		return line
	}
	model := venue.Default
	if o.VenueCostOverride != nil {
		model = *o.VenueCostOverride
	}
	line.CostType = model.Type
	line.Period = model.Period
	line.Rate = model.Amount

	if model.Type != domain.CostRented {
		return line
	}

	line.Days = inclusiveDays(o.StartDate, o.EffectiveEndDate())

	switch model.Period {
	case domain.PeriodFlatRate:
		line.Cost = model.Amount
	case domain.PeriodPerDay:
		line.Cost = model.Amount.Mul(decimal.NewFromInt(int64(line.Days)))
	case domain.PeriodPerHour:
		hours, ok := billableHours(o, opts)
		if !ok {
			line.Note = "missing start or end time"
			return line
		}
		line.Hours = hours
		line.Cost = model.Amount.Mul(hours).Mul(decimal.NewFromInt(int64(line.Days)))
	default:
		line.Note = fmt.Sprintf("unknown cost period %q", model.Period)
	}
	return line
}

// inclusiveDays counts calendar dates from start to end, both inclusive,
// ignoring time of day. An end before the start yields zero.
func inclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(s).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// billableHours returns the per-day hour count for a per-hour occurrence.
// The bool is false when a timed occurrence lacks a parsable clock time.
func billableHours(o *domain.Occurrence, opts VenueOptions) (decimal.Decimal, bool) {
	if o.IsAllDay {
		return opts.AllDayHours, true
	}
	start, okStart := parseClock(o.StartTime)
	end, okEnd := parseClock(o.EndTime)
	if !okStart || !okEnd {
		return decimal.Zero, false
	}
	span := end - start
	if span < 0 {
		if opts.Overnight == OvernightWrap {
			span += 24 * time.Hour
		} else {
			span = 0
		}
	}
	return decimal.NewFromInt(int64(span / time.Minute)).Div(decimal.NewFromInt(60)), true
}

// parseClock reads "HH:MM" or "HH:MM:SS" as an offset from midnight.
func parseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}
