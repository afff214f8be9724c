package importer

import (
	"testing"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MinimalProject(t *testing.T) {
	snap, err := Convert(validMinimalSchema())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.Project.ID)
	assert.Equal(t, "DANCE01", snap.Project.ShortID)
	assert.Equal(t, domain.ProjectActive, snap.Project.Status)

	fees := snap.Project.Budget.Items(domain.CategoryProfessionalFees)
	require.Len(t, fees, 1)
	assert.Equal(t, "artist_fees", fees[0].Source)
	assert.True(t, fees[0].Amount.Equal(decimal.NewFromInt(6000)))
	assert.Empty(t, snap.Venues)
	assert.Empty(t, snap.Occurrences)
}

func TestConvert_FullProjectWiresRefs(t *testing.T) {
	snap, err := Convert(validFullSchema())
	require.NoError(t, err)

	assert.Equal(t, "DANCE01", snap.Project.ShortID, "short id is upper-cased")

	grants := snap.Project.Budget.Items(domain.CategoryGrants)
	require.Len(t, grants, 1)
	assert.Equal(t, domain.ItemApproved, grants[0].Status)

	fees := snap.Project.Budget.Items(domain.CategoryProfessionalFees)
	require.Len(t, fees, 1)
	assert.True(t, fees[0].Amount.Equal(decimal.NewFromInt(6000)), "thousands separator accepted")
	assert.True(t, fees[0].ActualAmount.Valid)
	assert.True(t, snap.Project.Budget.Revenues.Tickets.ActualRevenue.Decimal.Equal(decimal.NewFromInt(1200)))

	require.Len(t, snap.Venues, 1)
	hall := snap.Venues[0]
	assert.Equal(t, domain.CostRented, hall.Default.Type)
	assert.Equal(t, domain.PeriodPerDay, hall.Default.Period)

	require.Len(t, snap.Occurrences, 2)
	premiere, matinee := snap.Occurrences[0], snap.Occurrences[1]
	assert.Equal(t, hall.ID, premiere.VenueID)
	assert.Equal(t, snap.Project.ID, premiere.ProjectID)
	assert.Equal(t, domain.OccurrenceScheduled, premiere.Status, "status defaults to scheduled")
	assert.Equal(t, 3, premiere.EndDate.Day())
	assert.Empty(t, matinee.VenueID)
	assert.True(t, matinee.EndDate.IsZero())
	require.NotNil(t, matinee.VenueCostOverride)
	assert.Equal(t, domain.CostFree, matinee.VenueCostOverride.Type)

	require.Len(t, snap.Offerings, 1)
	assert.Equal(t, premiere.ID, snap.Offerings[0].OccurrenceID)

	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, fees[0].ID, snap.Tasks[0].BudgetItemID)
	require.Len(t, snap.Activities, 1)
	assert.Equal(t, snap.Tasks[0].ID, snap.Activities[0].TaskID)
	assert.Equal(t, domain.ActivityApproved, snap.Activities[0].Status)

	require.Len(t, snap.Sessions, 2)
	assert.Equal(t, snap.Project.ID, snap.Sessions[0].ProjectID)
	assert.Equal(t, premiere.ID, snap.Sessions[1].EventID)
	assert.Empty(t, snap.Sessions[1].ProjectID)

	require.Len(t, snap.Transactions, 2)
	assert.Equal(t, snap.Sessions[0].ID, snap.Transactions[0].SaleSessionID)
	assert.False(t, snap.Transactions[1].RecordedAt.IsZero(), "missing recorded_at defaults to now")
}

func TestConvert_IDsAreUnique(t *testing.T) {
	a, err := Convert(validFullSchema())
	require.NoError(t, err)
	b, err := Convert(validFullSchema())
	require.NoError(t, err)

	assert.NotEqual(t, a.Project.ID, b.Project.ID)
	assert.NotEqual(t, a.Occurrences[0].ID, b.Occurrences[0].ID)
}
