package projection

import (
	"testing"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTickets_PriceTimesCapacity(t *testing.T) {
	venues := []domain.Venue{{ID: "v-1", Capacity: 200}}
	occs := []domain.Occurrence{
		occ("o-1", "v-1", day(2024, 5, 1), day(2024, 5, 1)),
		occ("o-2", "v-1", day(2024, 5, 2), day(2024, 5, 2)),
	}
	offerings := []domain.TicketOffering{
		{ID: "t-1", OccurrenceID: "o-1", Name: "General", Price: dec("25"), SoldCount: 50},
		{ID: "t-2", OccurrenceID: "o-2", Name: "Balcony", Price: dec("15"), CapacityOverride: 50, SoldCount: 50},
	}

	stats := AggregateTickets("p-1", occs, venues, offerings)

	assert.Equal(t, 2, stats.NumberOfPresentations)
	assert.Equal(t, 250, stats.ProjectedAudience)
	// 25×200 + 15×50
	assert.True(t, stats.ProjectedRevenue.Equal(dec("5750")), "got %s", stats.ProjectedRevenue)
	assert.True(t, stats.AverageTicketPrice.Equal(dec("20")))
	assert.True(t, stats.AverageVenueCapacity.Equal(dec("125")))
	// (0.25 + 1) / 2
	assert.True(t, stats.AveragePctSold.Equal(dec("0.625")), "got %s", stats.AveragePctSold)
}

func TestAggregateTickets_CancelledAndPendingContributeZero(t *testing.T) {
	venues := []domain.Venue{{ID: "v-1", Capacity: 200}}
	cancelled := occ("o-1", "v-1", day(2024, 5, 1), day(2024, 5, 1))
	cancelled.Status = domain.OccurrenceCancelled
	pending := occ("o-2", "v-1", day(2024, 5, 2), day(2024, 5, 2))
	pending.Status = domain.OccurrencePending
	offerings := []domain.TicketOffering{
		{ID: "t-1", OccurrenceID: "o-1", Price: dec("25")},
		{ID: "t-2", OccurrenceID: "o-2", Price: dec("25")},
	}

	stats := AggregateTickets("p-1", []domain.Occurrence{cancelled, pending}, venues, offerings)

	assert.Zero(t, stats.NumberOfPresentations)
	assert.True(t, stats.ProjectedRevenue.IsZero())
	assert.True(t, stats.AveragePctSold.IsZero())
	assert.Empty(t, stats.Offerings)
}

func TestAggregateTickets_ZeroCapacityHasZeroPctSold(t *testing.T) {
	occs := []domain.Occurrence{occ("o-1", "nowhere", day(2024, 5, 1), day(2024, 5, 1))}
	offerings := []domain.TicketOffering{{ID: "t-1", OccurrenceID: "o-1", Price: dec("10"), SoldCount: 5}}

	stats := AggregateTickets("p-1", occs, nil, offerings)

	require.Len(t, stats.Offerings, 1)
	assert.True(t, stats.Offerings[0].PctSold.IsZero())
	assert.True(t, stats.ProjectedRevenue.IsZero())
}

func TestAggregateSales_EstimatedVsActual(t *testing.T) {
	sessions := []domain.SaleSession{
		{ID: "s-1", Name: "Merch table", AssociationType: domain.AssociationProject, ProjectID: "p-1", ExpectedRevenue: dec("1000")},
	}
	txs := []domain.SalesTransaction{
		{ID: "x-1", SaleSessionID: "s-1", Total: dec("700")},
		{ID: "x-2", SaleSessionID: "s-1", Total: dec("500")},
	}

	got := AggregateSales("p-1", nil, sessions, txs)

	require.Len(t, got.Breakdown, 1)
	assert.True(t, got.Breakdown[0].Estimated.Equal(dec("1000")))
	assert.True(t, got.Breakdown[0].Actual.Equal(dec("1200")))
	assert.Equal(t, 2, got.Breakdown[0].TransactionCount)
	assert.True(t, got.TotalEstimatedRevenue.Equal(dec("1000")))
	assert.True(t, got.TotalActualRevenue.Equal(dec("1200")))
}

func TestAggregateSales_EventSessionsAndTotals(t *testing.T) {
	cancelled := occ("o-2", "v-1", day(2024, 5, 2), day(2024, 5, 2))
	cancelled.Status = domain.OccurrenceCancelled
	occs := []domain.Occurrence{occ("o-1", "v-1", day(2024, 5, 1), day(2024, 5, 1)), cancelled}
	sessions := []domain.SaleSession{
		{ID: "s-1", Name: "Lobby", AssociationType: domain.AssociationEvent, EventID: "o-1", ExpectedRevenue: dec("300")},
		{ID: "s-2", Name: "Bar", AssociationType: domain.AssociationEvent, EventID: "o-2", ExpectedRevenue: dec("200")},
		{ID: "s-3", Name: "Online", AssociationType: domain.AssociationProject, ProjectID: "p-1", ExpectedRevenue: dec("100")},
		{ID: "s-4", Name: "Elsewhere", AssociationType: domain.AssociationProject, ProjectID: "p-2", ExpectedRevenue: dec("999")},
		{ID: "s-5", Name: "Stray", AssociationType: domain.AssociationEvent, EventID: "o-unknown", ExpectedRevenue: dec("999")},
	}
	txs := []domain.SalesTransaction{
		{ID: "x-1", SaleSessionID: "s-1", Total: dec("120")},
		{ID: "x-2", SaleSessionID: "s-4", Total: dec("50")},
	}

	got := AggregateSales("p-1", occs, sessions, txs)

	require.Len(t, got.Breakdown, 3)
	assert.Equal(t, "Lobby - Show o-1", got.Breakdown[0].Label)
	assert.Equal(t, "Bar - Show o-2", got.Breakdown[1].Label)
	assert.Equal(t, "Online", got.Breakdown[2].Label)
	assert.True(t, got.Breakdown[2].Actual.IsZero(), "no transactions means zero actual")
	assert.True(t, got.TotalEstimatedRevenue.Equal(dec("600")))
	assert.True(t, got.TotalActualRevenue.Equal(dec("120")))
}

func TestComputeActuals_OnlyApprovedActivitiesCount(t *testing.T) {
	tasks := []domain.Task{{ID: "k-1", WorkType: domain.WorkPaid, HourlyRate: dec("50"), BudgetItemID: "b-1"}}
	activity := domain.Activity{ID: "a-1", TaskID: "k-1", Hours: dec("10"), Status: domain.ActivityPending}

	before := ComputeActuals(tasks, []domain.Activity{activity})
	assert.Empty(t, before.ByBudgetItem)
	assert.True(t, before.Total().IsZero())

	require.NoError(t, activity.Approve())
	after := ComputeActuals(tasks, []domain.Activity{activity})
	assert.True(t, after.ByBudgetItem["b-1"].Equal(dec("500")), "got %s", after.ByBudgetItem["b-1"])
	assert.True(t, after.Paid.Equal(dec("500")))
	assert.True(t, after.InKind.IsZero())
}

func TestComputeActuals_VolunteerExcluded(t *testing.T) {
	tasks := []domain.Task{
		{ID: "k-1", WorkType: domain.WorkVolunteer, HourlyRate: dec("30"), BudgetItemID: "b-1"},
		{ID: "k-2", WorkType: domain.WorkInKind, HourlyRate: dec("20"), BudgetItemID: "b-1"},
	}
	activities := []domain.Activity{
		{ID: "a-1", TaskID: "k-1", Hours: dec("8"), Status: domain.ActivityApproved},
		{ID: "a-2", TaskID: "k-2", Hours: dec("2.5"), Status: domain.ActivityApproved},
		{ID: "a-3", TaskID: "k-missing", Hours: dec("4"), Status: domain.ActivityApproved},
	}

	got := ComputeActuals(tasks, activities)

	assert.True(t, got.ByBudgetItem["b-1"].Equal(dec("50")), "got %s", got.ByBudgetItem["b-1"])
	assert.True(t, got.InKind.Equal(dec("50")))
	assert.True(t, got.Paid.IsZero())
	assert.True(t, got.ApprovedHours.Equal(dec("2.5")))
}

func TestComputeActuals_UnknownWorkTypeExcluded(t *testing.T) {
	tasks := []domain.Task{
		{ID: "k-1", WorkType: "", HourlyRate: dec("40"), BudgetItemID: "b-1"},
		{ID: "k-2", WorkType: "contract", HourlyRate: dec("40"), BudgetItemID: "b-1"},
		{ID: "k-3", WorkType: domain.WorkPaid, HourlyRate: dec("10"), BudgetItemID: "b-1"},
	}
	activities := []domain.Activity{
		{ID: "a-1", TaskID: "k-1", Hours: dec("5"), Status: domain.ActivityApproved},
		{ID: "a-2", TaskID: "k-2", Hours: dec("5"), Status: domain.ActivityApproved},
		{ID: "a-3", TaskID: "k-3", Hours: dec("3"), Status: domain.ActivityApproved},
	}

	got := ComputeActuals(tasks, activities)

	assert.True(t, got.ByBudgetItem["b-1"].Equal(dec("30")), "got %s", got.ByBudgetItem["b-1"])
	assert.True(t, got.Total().Equal(got.ByBudgetItem["b-1"]), "per-line sum matches paid plus in-kind")
	assert.True(t, got.ApprovedHours.Equal(dec("3")))
}
