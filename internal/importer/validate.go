package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
)

var (
	validOccurrenceStatuses = map[string]bool{"scheduled": true, "confirmed": true, "completed": true, "pending": true, "cancelled": true}
	validCostTypes          = map[string]bool{"free": true, "rented": true, "in_kind": true}
	validCostPeriods        = map[string]bool{"flat_rate": true, "per_day": true, "per_hour": true}
	validWorkTypes          = map[string]bool{"paid": true, "in_kind": true, "volunteer": true}
	validActivityStatuses   = map[string]bool{"pending": true, "approved": true}
	validItemStatuses       = map[string]bool{"pending": true, "approved": true, "denied": true}
	validAssociations       = map[string]bool{"project": true, "event": true}
)

// refSets collects the refs declared in a schema, by entity kind.
type refSets struct {
	budget      map[string]domain.Category
	venues      map[string]bool
	occurrences map[string]bool
	tasks       map[string]bool
	sessions    map[string]bool
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error
	refs := refSets{
		budget:      make(map[string]domain.Category),
		venues:      make(map[string]bool),
		occurrences: make(map[string]bool),
		tasks:       make(map[string]bool),
		sessions:    make(map[string]bool),
	}

	errs = append(errs, validateProject(&schema.Project)...)
	errs = append(errs, validateBudget(schema.Budget, refs.budget)...)
	errs = append(errs, validateOptionalAmount("ticket_actual_revenue", schema.TicketActual)...)
	errs = append(errs, validateVenues(schema.Venues, refs.venues)...)
	errs = append(errs, validateOccurrences(schema.Occurrences, refs)...)
	errs = append(errs, validateOfferings(schema.TicketOfferings, refs)...)
	errs = append(errs, validateTasks(schema.Tasks, refs)...)
	errs = append(errs, validateActivities(schema.Activities, refs)...)
	errs = append(errs, validateSessions(schema.SaleSessions, refs)...)
	errs = append(errs, validateTransactions(schema.Transactions, refs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("project.short_id is required"))
	} else {
		candidate := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
		if err := candidate.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("project.short_id: %w", err))
		}
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}

	return errs
}

func validateBudget(lines []BudgetLineImport, budgetRefs map[string]domain.Category) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, l := range lines {
		prefix := fmt.Sprintf("budget[%d]", i)

		c, ok := domain.ParseCategory(l.Category)
		if l.Category == "" {
			errs = append(errs, fmt.Errorf("%s.category is required", prefix))
		} else if !ok {
			errs = append(errs, fmt.Errorf("%s.category: invalid value %q", prefix, l.Category))
		}

		if strings.TrimSpace(l.Source) == "" {
			errs = append(errs, fmt.Errorf("%s.source is required", prefix))
		} else if ok {
			key := string(c) + "/" + strings.TrimSpace(l.Source)
			if seen[key] {
				errs = append(errs, fmt.Errorf("%s.source: duplicate source %q in %s", prefix, l.Source, c))
			}
			seen[key] = true
		}

		if l.Ref != "" {
			if _, dup := budgetRefs[l.Ref]; dup {
				errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, l.Ref))
			} else if ok {
				budgetRefs[l.Ref] = c
			}
		}

		if l.Status != "" {
			if ok && !c.IsRevenue() {
				errs = append(errs, fmt.Errorf("%s.status: only revenue lines carry a status", prefix))
			} else if !validItemStatuses[l.Status] {
				errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, l.Status))
			}
		}

		errs = append(errs, validateOptionalAmount(prefix+".amount", l.Amount)...)
		errs = append(errs, validateOptionalAmount(prefix+".actual_amount", l.ActualAmount)...)
	}

	return errs
}

func validateCost(prefix string, c *CostImport) []error {
	if c == nil {
		return nil
	}
	var errs []error
	if !validCostTypes[c.Type] {
		errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, c.Type))
	}
	if c.Period != "" && !validCostPeriods[c.Period] {
		errs = append(errs, fmt.Errorf("%s.period: invalid value %q", prefix, c.Period))
	}
	errs = append(errs, validateOptionalAmount(prefix+".amount", c.Amount)...)
	return errs
}

func validateVenues(venues []VenueImport, venueRefs map[string]bool) []error {
	var errs []error

	for i, v := range venues {
		prefix := fmt.Sprintf("venues[%d]", i)

		errs = append(errs, declareRef(prefix, v.Ref, venueRefs)...)
		if strings.TrimSpace(v.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if v.Capacity < 0 {
			errs = append(errs, fmt.Errorf("%s.capacity must not be negative", prefix))
		}
		errs = append(errs, validateCost(prefix+".cost", v.Cost)...)
	}

	return errs
}

func validateOccurrences(occs []OccurrenceImport, refs refSets) []error {
	var errs []error

	for i, o := range occs {
		prefix := fmt.Sprintf("occurrences[%d]", i)

		errs = append(errs, declareRef(prefix, o.Ref, refs.occurrences)...)
		if o.VenueRef != "" && !refs.venues[o.VenueRef] {
			errs = append(errs, fmt.Errorf("%s.venue_ref: ref %q not found in venues", prefix, o.VenueRef))
		}
		if o.Status != "" && !validOccurrenceStatuses[o.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, o.Status))
		}
		if o.StartDate == "" {
			errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
		} else {
			errs = append(errs, validateDate(prefix+".start_date", o.StartDate)...)
		}
		errs = append(errs, validateDate(prefix+".end_date", o.EndDate)...)
		errs = append(errs, validateClock(prefix+".start_time", o.StartTime)...)
		errs = append(errs, validateClock(prefix+".end_time", o.EndTime)...)
		errs = append(errs, validateCost(prefix+".cost_override", o.CostOverride)...)
	}

	return errs
}

func validateOfferings(offerings []OfferingImport, refs refSets) []error {
	var errs []error

	for i, t := range offerings {
		prefix := fmt.Sprintf("ticket_offerings[%d]", i)

		if t.OccurrenceRef == "" {
			errs = append(errs, fmt.Errorf("%s.occurrence_ref is required", prefix))
		} else if !refs.occurrences[t.OccurrenceRef] {
			errs = append(errs, fmt.Errorf("%s.occurrence_ref: ref %q not found in occurrences", prefix, t.OccurrenceRef))
		}
		if t.Price == "" {
			errs = append(errs, fmt.Errorf("%s.price is required", prefix))
		} else {
			errs = append(errs, validateOptionalAmount(prefix+".price", t.Price)...)
		}
		if t.Capacity < 0 || t.Sold < 0 {
			errs = append(errs, fmt.Errorf("%s: capacity and sold must not be negative", prefix))
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport, refs refSets) []error {
	var errs []error

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		errs = append(errs, declareRef(prefix, t.Ref, refs.tasks)...)
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.WorkType != "" && !validWorkTypes[t.WorkType] {
			errs = append(errs, fmt.Errorf("%s.work_type: invalid value %q", prefix, t.WorkType))
		}
		if t.BudgetRef != "" {
			c, ok := refs.budget[t.BudgetRef]
			if !ok {
				errs = append(errs, fmt.Errorf("%s.budget_ref: ref %q not found in budget", prefix, t.BudgetRef))
			} else if c.IsRevenue() {
				errs = append(errs, fmt.Errorf("%s.budget_ref: ref %q is a revenue line", prefix, t.BudgetRef))
			}
		}
		errs = append(errs, validateOptionalAmount(prefix+".hourly_rate", t.HourlyRate)...)
	}

	return errs
}

func validateActivities(activities []ActivityImport, refs refSets) []error {
	var errs []error

	for i, a := range activities {
		prefix := fmt.Sprintf("activities[%d]", i)

		if a.TaskRef == "" {
			errs = append(errs, fmt.Errorf("%s.task_ref is required", prefix))
		} else if !refs.tasks[a.TaskRef] {
			errs = append(errs, fmt.Errorf("%s.task_ref: ref %q not found in tasks", prefix, a.TaskRef))
		}
		if a.Date == "" {
			errs = append(errs, fmt.Errorf("%s.date is required", prefix))
		} else {
			errs = append(errs, validateDate(prefix+".date", a.Date)...)
		}
		if a.Hours == "" {
			errs = append(errs, fmt.Errorf("%s.hours is required", prefix))
		} else {
			errs = append(errs, validateOptionalAmount(prefix+".hours", a.Hours)...)
		}
		if a.Status != "" && !validActivityStatuses[a.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, a.Status))
		}
	}

	return errs
}

func validateSessions(sessions []SessionImport, refs refSets) []error {
	var errs []error

	for i, s := range sessions {
		prefix := fmt.Sprintf("sale_sessions[%d]", i)

		errs = append(errs, declareRef(prefix, s.Ref, refs.sessions)...)
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		switch {
		case !validAssociations[s.Association]:
			errs = append(errs, fmt.Errorf("%s.association: invalid value %q (project, event)", prefix, s.Association))
		case s.Association == "event" && s.OccurrenceRef == "":
			errs = append(errs, fmt.Errorf("%s.occurrence_ref is required for event sessions", prefix))
		case s.Association == "event" && !refs.occurrences[s.OccurrenceRef]:
			errs = append(errs, fmt.Errorf("%s.occurrence_ref: ref %q not found in occurrences", prefix, s.OccurrenceRef))
		}
		errs = append(errs, validateOptionalAmount(prefix+".expected_revenue", s.ExpectedRevenue)...)
	}

	return errs
}

func validateTransactions(txs []TransactionImport, refs refSets) []error {
	var errs []error

	for i, t := range txs {
		prefix := fmt.Sprintf("transactions[%d]", i)

		if t.SessionRef == "" {
			errs = append(errs, fmt.Errorf("%s.session_ref is required", prefix))
		} else if !refs.sessions[t.SessionRef] {
			errs = append(errs, fmt.Errorf("%s.session_ref: ref %q not found in sale_sessions", prefix, t.SessionRef))
		}
		if t.Total == "" {
			errs = append(errs, fmt.Errorf("%s.total is required", prefix))
		} else {
			errs = append(errs, validateOptionalAmount(prefix+".total", t.Total)...)
		}
		errs = append(errs, validateDate(prefix+".recorded_at", t.RecordedAt)...)
	}

	return errs
}

func declareRef(prefix, ref string, seen map[string]bool) []error {
	if ref == "" {
		return []error{fmt.Errorf("%s.ref is required", prefix)}
	}
	if seen[ref] {
		return []error{fmt.Errorf("%s.ref: duplicate ref %q", prefix, ref)}
	}
	seen[ref] = true
	return nil
}

func validateDate(field, s string) []error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)}
	}
	return nil
}

func validateClock(field, s string) []error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return []error{fmt.Errorf("%s: invalid time %q (expected HH:MM)", field, s)}
	}
	return nil
}

// validateOptionalAmount rejects amounts that interactive entry would coerce
// to zero; an import is a deliberate snapshot, so a typo should fail loudly.
func validateOptionalAmount(field, s string) []error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseAmountStrict(s); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}
