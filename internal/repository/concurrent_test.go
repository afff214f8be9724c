package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func retryTx(fn func() error) error {
	const maxRetries = 20
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(time.Millisecond * time.Duration(1<<min(attempt, 6)))
	}
	return err
}

// TestConcurrentAccess_ReadDuringWrite verifies that listing sales
// transactions never observes a half-written row while a writer records sales.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	projects := NewSQLiteProjectRepo(database)
	sessions := NewSQLiteSaleSessionRepo(database)
	transactions := NewSQLiteSalesTransactionRepo(database)

	proj := testutil.NewTestProject("ReadWrite")
	require.NoError(t, projects.Create(ctx, proj))
	session := testutil.NewTestProjectSession(proj.ID, "Merch", "0")
	require.NoError(t, sessions.Create(ctx, session))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			tx := testutil.NewTestTransaction(session.ID, fmt.Sprintf("%d.50", i))
			if err := retryTx(func() error { return transactions.Create(ctx, tx) }); err != nil {
				t.Errorf("writer: create transaction %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				txs, err := transactions.ListByProject(ctx, proj.ID)
				if err != nil {
					t.Errorf("reader %d: list transactions: %v", reader, err)
					return
				}
				for _, tx := range txs {
					if tx.ID == "" || tx.SaleSessionID != session.ID {
						t.Errorf("reader %d: got inconsistent transaction %+v", reader, tx)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	txs, err := transactions.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 20)
}

// TestConcurrentAccess_BudgetEditsInTransactions runs read-modify-write budget
// edits from many goroutines. Each edit reads and writes inside one
// transaction, so no added line is lost.
func TestConcurrentAccess_BudgetEditsInTransactions(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	projects := NewSQLiteProjectRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	proj := testutil.NewTestProject("Budget Concurrency")
	require.NoError(t, projects.Create(ctx, proj))

	const workers = 10
	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := retryTx(func() error {
				return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					txProjects := NewSQLiteProjectRepo(tx)
					p, err := txProjects.GetByID(ctx, proj.ID)
					if err != nil {
						return err
					}
					b, _, added := p.Budget.AddItem(domain.CategoryProduction, fmt.Sprintf("source_%d", i), fmt.Sprintf("item-%d", i))
					if !added {
						return fmt.Errorf("source_%d not added", i)
					}
					return txProjects.UpdateBudget(ctx, proj.ID, b)
				})
			})
			if err != nil {
				errCh <- err
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	fetched, err := projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Budget.Items(domain.CategoryProduction), workers)
	assert.Equal(t, uint64(workers), fetched.Budget.Revision)
}

// TestConcurrentAccess_SequentialWritesConcurrentReads builds state one
// project at a time, then checks many concurrent readers see all of it.
func TestConcurrentAccess_SequentialWritesConcurrentReads(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	projects := NewSQLiteProjectRepo(database)
	occurrences := NewSQLiteOccurrenceRepo(database)
	offerings := NewSQLiteTicketOfferingRepo(database)

	const projectCount = 10
	ids := make([]string, 0, projectCount)
	for i := 0; i < projectCount; i++ {
		proj := testutil.NewTestProject(fmt.Sprintf("Project-%d", i),
			testutil.WithShortID(fmt.Sprintf("CCC%02d", i)))
		require.NoError(t, projects.Create(ctx, proj))
		ids = append(ids, proj.ID)

		occ := testutil.NewTestOccurrence(proj.ID, "", fmt.Sprintf("Show-%d", i))
		require.NoError(t, occurrences.Create(ctx, occ))
		require.NoError(t, offerings.Create(ctx, testutil.NewTestOffering(occ.ID, "GA", "10", 100)))
	}

	var wg sync.WaitGroup
	const readers = 20

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()

			list, err := projects.List(ctx, false)
			if err != nil {
				t.Errorf("reader %d: list projects: %v", reader, err)
				return
			}
			if len(list) != projectCount {
				t.Errorf("reader %d: expected %d projects, got %d", reader, projectCount, len(list))
			}

			id := ids[reader%projectCount]
			offs, err := offerings.ListByProject(ctx, id)
			if err != nil {
				t.Errorf("reader %d: list offerings: %v", reader, err)
				return
			}
			if len(offs) != 1 {
				t.Errorf("reader %d: expected 1 offering, got %d", reader, len(offs))
			}
		}(r)
	}

	wg.Wait()
}
