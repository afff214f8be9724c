package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/google/uuid"
)

// Snapshot is a converted import, ready for persistence.
type Snapshot struct {
	Project      *domain.Project
	Venues       []*domain.Venue
	Occurrences  []*domain.Occurrence
	Offerings    []*domain.TicketOffering
	Tasks        []*domain.Task
	Activities   []*domain.Activity
	Sessions     []*domain.SaleSession
	Transactions []*domain.SalesTransaction
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*Snapshot, error) {
	now := time.Now().UTC()

	project := &domain.Project{
		ID:         uuid.New().String(),
		ShortID:    strings.ToUpper(schema.Project.ShortID),
		Name:       schema.Project.Name,
		Discipline: schema.Project.Discipline,
		Status:     domain.ProjectActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	refMap := make(map[string]string) // "kind:ref" -> UUID

	budget, err := convertBudget(schema, refMap)
	if err != nil {
		return nil, err
	}
	project.Budget = budget

	snap := &Snapshot{Project: project}

	for _, v := range schema.Venues {
		venue := &domain.Venue{
			ID:       uuid.New().String(),
			Name:     v.Name,
			Capacity: v.Capacity,
			Default:  convertCost(v.Cost),
		}
		refMap["venue:"+v.Ref] = venue.ID
		snap.Venues = append(snap.Venues, venue)
	}

	for _, o := range schema.Occurrences {
		start, err := time.Parse("2006-01-02", o.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing start_date of occurrence %q: %w", o.Ref, err)
		}
		occ := &domain.Occurrence{
			ID:         uuid.New().String(),
			ProjectID:  project.ID,
			VenueID:    refMap["venue:"+o.VenueRef],
			Title:      o.Title,
			Status:     domain.OccurrenceStatus(domain.CoalesceStr(o.Status, string(domain.OccurrenceScheduled))),
			StartDate:  start,
			EndDate:    parseOptionalDate(o.EndDate),
			StartTime:  o.StartTime,
			EndTime:    o.EndTime,
			IsAllDay:   o.AllDay,
			IsTemplate: o.Template,
		}
		if o.CostOverride != nil {
			override := convertCost(o.CostOverride)
			occ.VenueCostOverride = &override
		}
		refMap["occurrence:"+o.Ref] = occ.ID
		snap.Occurrences = append(snap.Occurrences, occ)
	}

	for _, t := range schema.TicketOfferings {
		occID, ok := refMap["occurrence:"+t.OccurrenceRef]
		if !ok {
			return nil, fmt.Errorf("occurrence_ref %q not found for ticket offering %q", t.OccurrenceRef, t.Name)
		}
		snap.Offerings = append(snap.Offerings, &domain.TicketOffering{
			ID:               uuid.New().String(),
			OccurrenceID:     occID,
			Name:             t.Name,
			Price:            domain.ParseAmount(t.Price),
			CapacityOverride: t.Capacity,
			SoldCount:        t.Sold,
		})
	}

	for _, t := range schema.Tasks {
		task := &domain.Task{
			ID:         uuid.New().String(),
			ProjectID:  project.ID,
			Title:      t.Title,
			WorkType:   domain.WorkType(domain.CoalesceStr(t.WorkType, string(domain.WorkPaid))),
			HourlyRate: domain.ParseAmount(t.HourlyRate),
			CreatedAt:  now,
		}
		if t.BudgetRef != "" {
			itemID, ok := refMap["budget:"+t.BudgetRef]
			if !ok {
				return nil, fmt.Errorf("budget_ref %q not found for task %q", t.BudgetRef, t.Ref)
			}
			task.BudgetItemID = itemID
		}
		refMap["task:"+t.Ref] = task.ID
		snap.Tasks = append(snap.Tasks, task)
	}

	for _, a := range schema.Activities {
		taskID, ok := refMap["task:"+a.TaskRef]
		if !ok {
			return nil, fmt.Errorf("task_ref %q not found", a.TaskRef)
		}
		snap.Activities = append(snap.Activities, &domain.Activity{
			ID:        uuid.New().String(),
			TaskID:    taskID,
			Date:      parseOptionalDate(a.Date),
			Hours:     domain.ParseAmount(a.Hours),
			Status:    domain.ActivityStatus(domain.CoalesceStr(a.Status, string(domain.ActivityPending))),
			Note:      a.Note,
			CreatedAt: now,
		})
	}

	for _, s := range schema.SaleSessions {
		session := &domain.SaleSession{
			ID:              uuid.New().String(),
			Name:            s.Name,
			AssociationType: domain.AssociationType(s.Association),
			ExpectedRevenue: domain.ParseAmount(s.ExpectedRevenue),
		}
		if session.AssociationType == domain.AssociationEvent {
			occID, ok := refMap["occurrence:"+s.OccurrenceRef]
			if !ok {
				return nil, fmt.Errorf("occurrence_ref %q not found for sale session %q", s.OccurrenceRef, s.Ref)
			}
			session.EventID = occID
		} else {
			session.ProjectID = project.ID
		}
		refMap["session:"+s.Ref] = session.ID
		snap.Sessions = append(snap.Sessions, session)
	}

	for _, t := range schema.Transactions {
		sessionID, ok := refMap["session:"+t.SessionRef]
		if !ok {
			return nil, fmt.Errorf("session_ref %q not found", t.SessionRef)
		}
		recorded := parseOptionalDate(t.RecordedAt)
		if recorded.IsZero() {
			recorded = now
		}
		snap.Transactions = append(snap.Transactions, &domain.SalesTransaction{
			ID:            uuid.New().String(),
			SaleSessionID: sessionID,
			Total:         domain.ParseAmount(t.Total),
			RecordedAt:    recorded,
		})
	}

	return snap, nil
}

// convertBudget builds the budget through the same operations interactive
// editing uses, so imported and hand-entered budgets are indistinguishable.
func convertBudget(schema *ImportSchema, refMap map[string]string) (domain.DetailedBudget, error) {
	var b domain.DetailedBudget
	for i, l := range schema.Budget {
		c, ok := domain.ParseCategory(l.Category)
		if !ok {
			return b, fmt.Errorf("budget[%d]: invalid category %q", i, l.Category)
		}
		var item domain.BudgetItem
		var added bool
		b, item, added = b.AddItem(c, l.Source, uuid.New().String())
		if !added {
			return b, fmt.Errorf("budget[%d]: source %q already present in %s", i, l.Source, c)
		}
		if l.Description != "" {
			b, _ = b.UpdateItem(item.ID, domain.FieldDescription, l.Description)
		}
		if l.Amount != "" {
			b, _ = b.UpdateItem(item.ID, domain.FieldAmount, l.Amount)
		}
		if l.ActualAmount != "" {
			b, _ = b.UpdateItem(item.ID, domain.FieldActualAmount, l.ActualAmount)
		}
		if l.Status != "" && c.IsRevenue() {
			b, _ = b.UpdateItem(item.ID, domain.FieldStatus, l.Status)
		}
		if l.Ref != "" {
			refMap["budget:"+l.Ref] = item.ID
		}
	}
	if schema.TicketActual != "" {
		b = b.SetTicketActualRevenue(schema.TicketActual)
	}
	return b, nil
}

func convertCost(c *CostImport) domain.CostModel {
	if c == nil {
		return domain.CostModel{Type: domain.CostFree, Period: domain.PeriodFlatRate}
	}
	return domain.CostModel{
		Type:   domain.CostType(c.Type),
		Amount: domain.ParseAmount(c.Amount),
		Period: domain.CostPeriod(domain.CoalesceStr(c.Period, string(domain.PeriodFlatRate))),
	}
}

func parseOptionalDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
