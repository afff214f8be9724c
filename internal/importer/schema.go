package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level YAML structure for a project import. Entities
// refer to each other through file-local refs, replaced by fresh IDs on
// conversion.
type ImportSchema struct {
	Project         ProjectImport       `yaml:"project"`
	Budget          []BudgetLineImport  `yaml:"budget,omitempty"`
	TicketActual    string              `yaml:"ticket_actual_revenue,omitempty"`
	Venues          []VenueImport       `yaml:"venues,omitempty"`
	Occurrences     []OccurrenceImport  `yaml:"occurrences,omitempty"`
	TicketOfferings []OfferingImport    `yaml:"ticket_offerings,omitempty"`
	Tasks           []TaskImport        `yaml:"tasks,omitempty"`
	Activities      []ActivityImport    `yaml:"activities,omitempty"`
	SaleSessions    []SessionImport     `yaml:"sale_sessions,omitempty"`
	Transactions    []TransactionImport `yaml:"transactions,omitempty"`
}

type ProjectImport struct {
	ShortID    string `yaml:"short_id"`
	Name       string `yaml:"name"`
	Discipline string `yaml:"discipline,omitempty"`
}

// BudgetLineImport is one manual budget line. Amounts are strings so that
// "1,200" and "$50" are accepted the same way as interactive entry.
type BudgetLineImport struct {
	Ref          string `yaml:"ref,omitempty"`
	Category     string `yaml:"category"`
	Source       string `yaml:"source"`
	Description  string `yaml:"description,omitempty"`
	Amount       string `yaml:"amount,omitempty"`
	ActualAmount string `yaml:"actual_amount,omitempty"`
	Status       string `yaml:"status,omitempty"`
}

type CostImport struct {
	Type   string `yaml:"type"`
	Amount string `yaml:"amount,omitempty"`
	Period string `yaml:"period,omitempty"`
}

type VenueImport struct {
	Ref      string      `yaml:"ref"`
	Name     string      `yaml:"name"`
	Capacity int         `yaml:"capacity,omitempty"`
	Cost     *CostImport `yaml:"cost,omitempty"`
}

type OccurrenceImport struct {
	Ref          string      `yaml:"ref"`
	VenueRef     string      `yaml:"venue_ref,omitempty"`
	Title        string      `yaml:"title"`
	Status       string      `yaml:"status,omitempty"`
	StartDate    string      `yaml:"start_date"`
	EndDate      string      `yaml:"end_date,omitempty"`
	StartTime    string      `yaml:"start_time,omitempty"`
	EndTime      string      `yaml:"end_time,omitempty"`
	AllDay       bool        `yaml:"all_day,omitempty"`
	Template     bool        `yaml:"template,omitempty"`
	CostOverride *CostImport `yaml:"cost_override,omitempty"`
}

type OfferingImport struct {
	OccurrenceRef string `yaml:"occurrence_ref"`
	Name          string `yaml:"name"`
	Price         string `yaml:"price"`
	Capacity      int    `yaml:"capacity,omitempty"`
	Sold          int    `yaml:"sold,omitempty"`
}

type TaskImport struct {
	Ref        string `yaml:"ref"`
	Title      string `yaml:"title"`
	WorkType   string `yaml:"work_type,omitempty"`
	HourlyRate string `yaml:"hourly_rate,omitempty"`
	BudgetRef  string `yaml:"budget_ref,omitempty"`
}

type ActivityImport struct {
	TaskRef string `yaml:"task_ref"`
	Date    string `yaml:"date"`
	Hours   string `yaml:"hours"`
	Status  string `yaml:"status,omitempty"`
	Note    string `yaml:"note,omitempty"`
}

type SessionImport struct {
	Ref             string `yaml:"ref"`
	Name            string `yaml:"name"`
	Association     string `yaml:"association"`
	OccurrenceRef   string `yaml:"occurrence_ref,omitempty"`
	ExpectedRevenue string `yaml:"expected_revenue,omitempty"`
}

type TransactionImport struct {
	SessionRef string `yaml:"session_ref"`
	Total      string `yaml:"total"`
	RecordedAt string `yaml:"recorded_at,omitempty"`
}

// LoadImportSchema reads and parses a project import YAML file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses YAML import data. Unknown keys are rejected so
// typos surface instead of silently dropping data.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing import file: file is empty")
		}
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
