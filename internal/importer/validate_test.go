package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Project: ProjectImport{
			ShortID: "DANCE01",
			Name:    "Spring Dance Tour",
		},
		Budget: []BudgetLineImport{
			{Ref: "fees", Category: "professional_fees", Source: "artist_fees", Amount: "6000"},
		},
	}
}

func validFullSchema() *ImportSchema {
	return &ImportSchema{
		Project: ProjectImport{ShortID: "dance01", Name: "Spring Dance Tour", Discipline: "dance"},
		Budget: []BudgetLineImport{
			{Ref: "grant", Category: "grants", Source: "arts_council", Amount: "10000", Status: "approved"},
			{Ref: "fees", Category: "professionalFees", Source: "artist_fees", Amount: "6,000", ActualAmount: "500"},
		},
		TicketActual: "1200",
		Venues: []VenueImport{
			{Ref: "hall", Name: "Main Hall", Capacity: 200, Cost: &CostImport{Type: "rented", Amount: "100", Period: "per_day"}},
		},
		Occurrences: []OccurrenceImport{
			{Ref: "show1", VenueRef: "hall", Title: "Premiere", StartDate: "2025-04-01", EndDate: "2025-04-03", StartTime: "19:00", EndTime: "21:30"},
			{Ref: "show2", Title: "Matinee", StartDate: "2025-04-05", AllDay: true, CostOverride: &CostImport{Type: "free"}},
		},
		TicketOfferings: []OfferingImport{
			{OccurrenceRef: "show1", Name: "General", Price: "25", Sold: 40},
		},
		Tasks: []TaskImport{
			{Ref: "choreo", Title: "Choreography", WorkType: "paid", HourlyRate: "50", BudgetRef: "fees"},
		},
		Activities: []ActivityImport{
			{TaskRef: "choreo", Date: "2025-03-01", Hours: "10", Status: "approved"},
		},
		SaleSessions: []SessionImport{
			{Ref: "merch", Name: "Merch table", Association: "project", ExpectedRevenue: "1000"},
			{Ref: "lobby", Name: "Lobby bar", Association: "event", OccurrenceRef: "show1"},
		},
		Transactions: []TransactionImport{
			{SessionRef: "merch", Total: "700", RecordedAt: "2025-04-01"},
			{SessionRef: "lobby", Total: "120"},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	errs := ValidateImportSchema(validFullSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ProjectFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.ShortID = "D1"
	schema.Project.Name = " "

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "project.short_id")
	assert.Contains(t, errs[1].Error(), "project.name is required")
}

func TestValidateImportSchema_BudgetLines(t *testing.T) {
	schema := validMinimalSchema()
	schema.Budget = append(schema.Budget,
		BudgetLineImport{Category: "professional_fees", Source: "artist_fees"},
		BudgetLineImport{Category: "catering", Source: "food"},
		BudgetLineImport{Category: "travel", Source: "transportation", Status: "approved"},
		BudgetLineImport{Category: "grants", Source: "arts_council", Amount: "lots"},
	)

	errs := ValidateImportSchema(schema)
	msgs := errorStrings(errs)
	assert.Contains(t, msgs, "duplicate source")
	assert.Contains(t, msgs, `category: invalid value "catering"`)
	assert.Contains(t, msgs, "only revenue lines carry a status")
	assert.Contains(t, msgs, `invalid amount "lots"`)
}

func TestValidateImportSchema_AmountExponentOutOfRange(t *testing.T) {
	schema := validFullSchema()
	schema.Budget[0].Amount = "1e2000000000"
	schema.Transactions[0].Total = "5e-900"

	msgs := errorStrings(ValidateImportSchema(schema))
	assert.Contains(t, msgs, `budget[0].amount: invalid amount "1e2000000000": exponent out of range`)
	assert.Contains(t, msgs, `invalid amount "5e-900": exponent out of range`)
}

func TestValidateImportSchema_DanglingRefs(t *testing.T) {
	schema := validFullSchema()
	schema.Occurrences[0].VenueRef = "nowhere"
	schema.TicketOfferings[0].OccurrenceRef = "ghost"
	schema.Tasks[0].BudgetRef = "missing"
	schema.Activities[0].TaskRef = "nobody"
	schema.SaleSessions[1].OccurrenceRef = "ghost"
	schema.Transactions[0].SessionRef = "closed"

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 6, "every dangling ref is reported: %v", errs)
}

func TestValidateImportSchema_TaskLinkedToRevenue(t *testing.T) {
	schema := validFullSchema()
	schema.Tasks[0].BudgetRef = "grant"

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "revenue line")
}

func TestValidateImportSchema_DatesTimesAndEnums(t *testing.T) {
	schema := validFullSchema()
	schema.Occurrences[0].StartDate = "04/01/2025"
	schema.Occurrences[0].EndTime = "9pm"
	schema.Occurrences[1].Status = "maybe"
	schema.Venues[0].Cost.Period = "weekly"
	schema.SaleSessions[0].Association = "tour"

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 5, "%v", errs)
}

func TestValidateImportSchema_DuplicateRefs(t *testing.T) {
	schema := validFullSchema()
	schema.Venues = append(schema.Venues, VenueImport{Ref: "hall", Name: "Annex"})

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `duplicate ref "hall"`)
}

func TestParseImportSchema_YAML(t *testing.T) {
	data := []byte(`
project:
  short_id: FEST24
  name: Harbour Festival
budget:
  - ref: grant
    category: grants
    source: municipal_grant
    amount: "5000"
venues:
  - ref: pier
    name: Pier Stage
    capacity: 300
    cost: {type: rented, amount: "250", period: flat_rate}
occurrences:
  - ref: opening
    venue_ref: pier
    title: Opening Night
    start_date: "2024-07-01"
`)

	schema, err := ParseImportSchema(data)
	require.NoError(t, err)
	assert.Equal(t, "FEST24", schema.Project.ShortID)
	require.Len(t, schema.Budget, 1)
	assert.Equal(t, "5000", schema.Budget[0].Amount)
	require.Len(t, schema.Venues, 1)
	assert.Equal(t, 300, schema.Venues[0].Capacity)
	assert.Equal(t, "rented", schema.Venues[0].Cost.Type)
	require.Len(t, schema.Occurrences, 1)
	assert.Equal(t, "pier", schema.Occurrences[0].VenueRef)
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestParseImportSchema_UnknownKeyRejected(t *testing.T) {
	_, err := ParseImportSchema([]byte("project:\n  short_id: FEST24\n  nmae: typo\n"))
	assert.Error(t, err)
}

func TestParseImportSchema_Empty(t *testing.T) {
	_, err := ParseImportSchema(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func errorStrings(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}
