package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const danceImportYAML = `
project:
  short_id: dance01
  name: Spring Dance Tour
  discipline: dance
budget:
  - ref: grant
    category: grants
    source: arts_council
    amount: "10000"
    status: approved
  - ref: fees
    category: professional_fees
    source: artist_fees
    amount: "6,000"
venues:
  - ref: hall
    name: Main Hall
    capacity: 200
    cost: {type: rented, amount: "100", period: per_day}
occurrences:
  - ref: show1
    venue_ref: hall
    title: Premiere
    start_date: "2025-04-01"
    end_date: "2025-04-03"
  - ref: show2
    title: Matinee
    start_date: "2025-04-05"
    all_day: true
ticket_offerings:
  - occurrence_ref: show1
    name: General
    price: "25"
tasks:
  - ref: choreo
    title: Choreography
    hourly_rate: "50"
    budget_ref: fees
activities:
  - task_ref: choreo
    date: "2025-03-01"
    hours: "10"
    status: approved
sale_sessions:
  - ref: merch
    name: Merch table
    association: project
    expected_revenue: "1000"
  - ref: lobby
    name: Lobby bar
    association: event
    occurrence_ref: show1
transactions:
  - session_ref: merch
    total: "700"
  - session_ref: lobby
    total: "120"
`

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportProject_FromYAML(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)

	res, err := svc.ImportProject(ctx, writeImportFile(t, danceImportYAML))
	require.NoError(t, err)

	assert.Equal(t, "DANCE01", res.Project.ShortID)
	assert.Equal(t, 2, res.BudgetItemCount)
	assert.Equal(t, 1, res.VenueCount)
	assert.Equal(t, 2, res.OccurrenceCount)
	assert.Equal(t, 1, res.OfferingCount)
	assert.Equal(t, 1, res.TaskCount)
	assert.Equal(t, 1, res.ActivityCount)
	assert.Equal(t, 2, res.SessionCount)
	assert.Equal(t, 2, res.TransactionCount)

	stored, err := r.projects.GetByShortID(ctx, "DANCE01")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Budget.ItemCount())

	occurrences, err := r.occurrences.ListByProject(ctx, stored.ID)
	require.NoError(t, err)
	assert.Len(t, occurrences, 2)

	sessions, err := r.sessions.ListByProject(ctx, stored.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2, "event sessions are found through their occurrence")
}

func TestImportProject_BalanceOfImportedProject(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	res, err := NewImportService(r.uow).ImportProject(ctx, writeImportFile(t, danceImportYAML))
	require.NoError(t, err)

	bal, err := r.balanceService(NewUoWSalesUpdater(r.uow)).Compute(ctx, res.Project.ID)
	require.NoError(t, err)

	s := bal.Summary
	// grants 10000 + sales actual 820 + tickets 25 x 200
	assert.True(t, s.TotalRevenue.Equal(testutil.Dec("15820")), "got %s", s.TotalRevenue)
	// fees 6000 + three rental days at 100
	assert.True(t, s.TotalExpenses.Equal(testutil.Dec("6300")), "got %s", s.TotalExpenses)
	assert.True(t, s.Balance.Equal(testutil.Dec("9520")), "got %s", s.Balance)
	assert.True(t, bal.SalesWritten)
}

func TestImportProject_ValidationFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)

	content := `
project:
  short_id: x
  name: Broken
occurrences:
  - ref: show1
    venue_ref: nowhere
    title: Lost
    start_date: "2025-04-01"
`
	_, err := svc.ImportProject(ctx, writeImportFile(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "nowhere")

	projects, err := r.projects.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestImportProject_MissingFile(t *testing.T) {
	r := setupRepos(t)
	_, err := NewImportService(r.uow).ImportProject(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}
