package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostModel is the rental arrangement for a venue.
type CostModel struct {
	Type   CostType
	Amount decimal.Decimal
	Period CostPeriod
}

type Venue struct {
	ID       string
	Name     string
	Capacity int
	Default  CostModel
}

// Occurrence is a single dated instance of a project's public activity.
// StartTime and EndTime are wall-clock "HH:MM" strings; empty means unknown.
type Occurrence struct {
	ID        string
	ProjectID string
	VenueID   string
	Title     string
	Status    OccurrenceStatus
	StartDate time.Time
	EndDate   time.Time
	StartTime string
	EndTime   string
	IsAllDay  bool

	// IsTemplate marks the placeholder a recurring series is expanded from.
	IsTemplate bool

	// VenueCostOverride, when set, replaces the venue's cost type, amount and
	// period for this occurrence only.
	VenueCostOverride *CostModel
}

// Qualifies reports whether o accrues costs and revenue for projectID:
// it belongs to the project, is not a template, and is neither pending
// (not yet contracted) nor cancelled.
func (o *Occurrence) Qualifies(projectID string) bool {
	if o.ProjectID != projectID || o.IsTemplate {
		return false
	}
	return o.Status != OccurrencePending && o.Status != OccurrenceCancelled
}

// EffectiveEndDate returns EndDate, or StartDate for single-day occurrences
// recorded without an end.
func (o *Occurrence) EffectiveEndDate() time.Time {
	if o.EndDate.IsZero() {
		return o.StartDate
	}
	return o.EndDate
}

// TicketOffering is a priced ticket tier sold for one occurrence.
// CapacityOverride of zero means the venue's capacity applies.
type TicketOffering struct {
	ID               string
	OccurrenceID     string
	Name             string
	Price            decimal.Decimal
	CapacityOverride int
	SoldCount        int
}
