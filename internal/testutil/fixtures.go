package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testShortIDCounter atomic.Int64

// Dec parses a decimal literal, panicking on malformed test input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Day returns midnight UTC on the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithBudget(b domain.DetailedBudget) ProjectOption {
	return func(p *domain.Project) {
		p.Budget = b
	}
}

func WithPersistedSales(estimated, actual string) ProjectOption {
	return func(p *domain.Project) {
		p.EstimatedSales = Dec(estimated)
		p.ActualSales = Dec(actual)
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:             uuid.New().String(),
		ShortID:        defaultShortID(name),
		Name:           name,
		Discipline:     "theatre",
		Status:         domain.ProjectActive,
		EstimatedSales: decimal.Zero,
		ActualSales:    decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Venue options
type VenueOption func(*domain.Venue)

func WithCapacity(n int) VenueOption {
	return func(v *domain.Venue) {
		v.Capacity = n
	}
}

// WithRent sets a rented cost model.
func WithRent(amount string, period domain.CostPeriod) VenueOption {
	return func(v *domain.Venue) {
		v.Default = domain.CostModel{Type: domain.CostRented, Amount: Dec(amount), Period: period}
	}
}

func NewTestVenue(name string, opts ...VenueOption) *domain.Venue {
	v := &domain.Venue{
		ID:       uuid.New().String(),
		Name:     name,
		Capacity: 100,
		Default:  domain.CostModel{Type: domain.CostFree, Amount: decimal.Zero, Period: domain.PeriodFlatRate},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Occurrence options
type OccurrenceOption func(*domain.Occurrence)

func WithOccurrenceStatus(s domain.OccurrenceStatus) OccurrenceOption {
	return func(o *domain.Occurrence) {
		o.Status = s
	}
}

func WithDates(start, end time.Time) OccurrenceOption {
	return func(o *domain.Occurrence) {
		o.StartDate = start
		o.EndDate = end
	}
}

func WithTimes(start, end string) OccurrenceOption {
	return func(o *domain.Occurrence) {
		o.StartTime = start
		o.EndTime = end
	}
}

func WithAllDay() OccurrenceOption {
	return func(o *domain.Occurrence) {
		o.IsAllDay = true
	}
}

func WithCostOverride(m domain.CostModel) OccurrenceOption {
	return func(o *domain.Occurrence) {
		o.VenueCostOverride = &m
	}
}

func NewTestOccurrence(projectID, venueID, title string, opts ...OccurrenceOption) *domain.Occurrence {
	o := &domain.Occurrence{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		VenueID:   venueID,
		Title:     title,
		Status:    domain.OccurrenceScheduled,
		StartDate: Day(2024, 3, 1),
		EndDate:   Day(2024, 3, 1),
		StartTime: "19:00",
		EndTime:   "21:00",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Task options
type TaskOption func(*domain.Task)

func WithWorkType(w domain.WorkType) TaskOption {
	return func(t *domain.Task) {
		t.WorkType = w
	}
}

func WithBudgetItem(id string) TaskOption {
	return func(t *domain.Task) {
		t.BudgetItemID = id
	}
}

func NewTestTask(projectID, title, rate string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Title:      title,
		WorkType:   domain.WorkPaid,
		HourlyRate: Dec(rate),
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithApproved() ActivityOption {
	return func(a *domain.Activity) {
		a.Status = domain.ActivityApproved
	}
}

func WithNote(n string) ActivityOption {
	return func(a *domain.Activity) {
		a.Note = n
	}
}

func NewTestActivity(taskID, hours string, opts ...ActivityOption) *domain.Activity {
	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.Activity{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Date:      Day(now.Year(), now.Month(), now.Day()),
		Hours:     Dec(hours),
		Status:    domain.ActivityPending,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewTestProjectSession returns a sale session attached directly to a project.
func NewTestProjectSession(projectID, name, expected string) *domain.SaleSession {
	return &domain.SaleSession{
		ID:              uuid.New().String(),
		Name:            name,
		AssociationType: domain.AssociationProject,
		ProjectID:       projectID,
		ExpectedRevenue: Dec(expected),
	}
}

// NewTestEventSession returns a sale session attached to an occurrence.
func NewTestEventSession(occurrenceID, name, expected string) *domain.SaleSession {
	return &domain.SaleSession{
		ID:              uuid.New().String(),
		Name:            name,
		AssociationType: domain.AssociationEvent,
		EventID:         occurrenceID,
		ExpectedRevenue: Dec(expected),
	}
}

func NewTestTransaction(sessionID, total string) *domain.SalesTransaction {
	return &domain.SalesTransaction{
		ID:            uuid.New().String(),
		SaleSessionID: sessionID,
		Total:         Dec(total),
		RecordedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestOffering(occurrenceID, name, price string, capacityOverride int) *domain.TicketOffering {
	return &domain.TicketOffering{
		ID:               uuid.New().String(),
		OccurrenceID:     occurrenceID,
		Name:             name,
		Price:            Dec(price),
		CapacityOverride: capacityOverride,
	}
}
