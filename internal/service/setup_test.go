package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/projection"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	db           *sql.DB
	uow          db.UnitOfWork
	projects     repository.ProjectRepo
	venues       repository.VenueRepo
	occurrences  repository.OccurrenceRepo
	offerings    repository.TicketOfferingRepo
	tasks        repository.TaskRepo
	activities   repository.ActivityRepo
	sessions     repository.SaleSessionRepo
	transactions repository.SalesTransactionRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:           database,
		uow:          testutil.NewTestUoW(database),
		projects:     repository.NewSQLiteProjectRepo(database),
		venues:       repository.NewSQLiteVenueRepo(database),
		occurrences:  repository.NewSQLiteOccurrenceRepo(database),
		offerings:    repository.NewSQLiteTicketOfferingRepo(database),
		tasks:        repository.NewSQLiteTaskRepo(database),
		activities:   repository.NewSQLiteActivityRepo(database),
		sessions:     repository.NewSQLiteSaleSessionRepo(database),
		transactions: repository.NewSQLiteSalesTransactionRepo(database),
	}
}

func (r testRepos) balanceSources() BalanceSources {
	return BalanceSources{
		Projects:     r.projects,
		Venues:       r.venues,
		Occurrences:  r.occurrences,
		Offerings:    r.offerings,
		Tasks:        r.tasks,
		Activities:   r.activities,
		Sessions:     r.sessions,
		Transactions: r.transactions,
	}
}

func (r testRepos) balanceService(updater SalesUpdater) BalanceService {
	return NewBalanceService(r.balanceSources(), NewSalesWriteBack(updater, nil), projection.DefaultVenueOptions(), nil)
}

// seededProject stores a project with one expense line (3000 artist fees), a
// three-day per-day rental at 100/day, a 10-dollar ticket tier on a 100-seat
// venue, 10 pending hours at 50/h against the fees line, and a merch session
// expecting 1000 with 1200 sold.
type seededProject struct {
	project  *domain.Project
	feesID   string
	activity *domain.Activity
}

func seedProject(t *testing.T, r testRepos) seededProject {
	t.Helper()
	ctx := context.Background()

	var b domain.DetailedBudget
	b, fees, _ := b.AddItem(domain.CategoryProfessionalFees, "artist_fees", "fees-1")
	b, _ = b.UpdateItem(fees.ID, domain.FieldAmount, "3000")

	p := testutil.NewTestProject("Winter Season", testutil.WithBudget(b))
	require.NoError(t, r.projects.Create(ctx, p))

	v := testutil.NewTestVenue("Main Hall", testutil.WithRent("100", domain.PeriodPerDay))
	require.NoError(t, r.venues.Create(ctx, v))

	o := testutil.NewTestOccurrence(p.ID, v.ID, "Premiere", testutil.WithDates(testutil.Day(2024, 3, 1), testutil.Day(2024, 3, 3)))
	require.NoError(t, r.occurrences.Create(ctx, o))
	require.NoError(t, r.offerings.Create(ctx, testutil.NewTestOffering(o.ID, "General", "10", 0)))

	task := testutil.NewTestTask(p.ID, "Choreography", "50", testutil.WithBudgetItem(fees.ID))
	require.NoError(t, r.tasks.Create(ctx, task))
	a := testutil.NewTestActivity(task.ID, "10")
	require.NoError(t, r.activities.Create(ctx, a))

	s := testutil.NewTestProjectSession(p.ID, "Merch", "1000")
	require.NoError(t, r.sessions.Create(ctx, s))
	require.NoError(t, r.transactions.Create(ctx, testutil.NewTestTransaction(s.ID, "1200")))

	return seededProject{project: p, feesID: fees.ID, activity: a}
}
