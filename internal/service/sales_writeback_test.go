package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUpdater struct {
	mu     sync.Mutex
	writes []domain.SalesFigures
	err    error

	// When block is set, the first write signals started and waits on block.
	started chan struct{}
	block   chan struct{}
	once    sync.Once
}

func (u *recordingUpdater) UpdateSalesFigures(_ context.Context, _ string, f domain.SalesFigures) error {
	if u.block != nil {
		first := false
		u.once.Do(func() { first = true })
		if first {
			close(u.started)
			<-u.block
		}
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return u.err
	}
	u.writes = append(u.writes, f)
	return nil
}

func (u *recordingUpdater) recorded() []domain.SalesFigures {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]domain.SalesFigures(nil), u.writes...)
}

func figures(est, act string) domain.SalesFigures {
	return domain.SalesFigures{Estimated: testutil.Dec(est), Actual: testutil.Dec(act)}
}

func TestSalesWriteBack_SkipsWhenUnchanged(t *testing.T) {
	u := &recordingUpdater{}
	wb := NewSalesWriteBack(u, nil)

	written, err := wb.Sync(context.Background(), "p1", figures("100", "50"), figures("100.00", "50"))
	require.NoError(t, err)
	assert.False(t, written)
	assert.Empty(t, u.recorded())
}

func TestSalesWriteBack_Idempotent(t *testing.T) {
	u := &recordingUpdater{}
	wb := NewSalesWriteBack(u, nil)
	ctx := context.Background()

	written, err := wb.Sync(ctx, "p1", figures("0", "0"), figures("100", "50"))
	require.NoError(t, err)
	assert.True(t, written)

	// A caller still holding the stale persisted value does not write twice.
	written, err = wb.Sync(ctx, "p1", figures("0", "0"), figures("100", "50"))
	require.NoError(t, err)
	assert.False(t, written)

	assert.Len(t, u.recorded(), 1)
}

func TestSalesWriteBack_FailureWrapsPersistence(t *testing.T) {
	u := &recordingUpdater{err: errors.New("database is locked")}
	wb := NewSalesWriteBack(u, nil)
	ctx := context.Background()

	written, err := wb.Sync(ctx, "p1", figures("0", "0"), figures("100", "50"))
	require.Error(t, err)
	assert.False(t, written)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "database is locked")

	// Nothing was retried internally, and the slot was released for the next computation.
	u.mu.Lock()
	u.err = nil
	u.mu.Unlock()
	written, err = wb.Sync(ctx, "p1", figures("0", "0"), figures("100", "50"))
	require.NoError(t, err)
	assert.True(t, written)
	assert.Len(t, u.recorded(), 1)
}

type syncOutcome struct {
	written bool
	err     error
}

func syncAsync(wb *SalesWriteBack, projectID string, persisted, computed domain.SalesFigures) <-chan syncOutcome {
	out := make(chan syncOutcome, 1)
	go func() {
		w, err := wb.Sync(context.Background(), projectID, persisted, computed)
		out <- syncOutcome{w, err}
	}()
	return out
}

func waitStarted(t *testing.T, u *recordingUpdater) {
	t.Helper()
	select {
	case <-u.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first write never started")
	}
}

// waitGeneration blocks until projectID has seen n computations.
func waitGeneration(t *testing.T, wb *SalesWriteBack, projectID string, n uint64) {
	t.Helper()
	require.Eventually(t, func() bool {
		wb.mu.Lock()
		defer wb.mu.Unlock()
		return wb.stateFor(projectID).generation >= n
	}, 2*time.Second, time.Millisecond)
}

func TestSalesWriteBack_CoalescesBehindInFlightWrite(t *testing.T) {
	u := &recordingUpdater{started: make(chan struct{}), block: make(chan struct{})}
	wb := NewSalesWriteBack(u, nil)
	p0 := figures("0", "0")

	first := syncAsync(wb, "p1", p0, figures("100", "10"))
	waitStarted(t, u)

	queued := syncAsync(wb, "p1", p0, figures("200", "20"))
	waitGeneration(t, wb, "p1", 2)

	close(u.block)
	res := <-first
	require.NoError(t, res.err)
	assert.True(t, res.written)

	q := <-queued
	require.NoError(t, q.err)
	assert.False(t, q.written, "queued computation is written by the in-flight writer")

	writes := u.recorded()
	require.Len(t, writes, 2)
	assert.True(t, writes[0].Equal(figures("100", "10")))
	assert.True(t, writes[1].Equal(figures("200", "20")), "last computed value ends up stored")
}

func TestSalesWriteBack_QueuedCallerSeesInFlightFailure(t *testing.T) {
	u := &recordingUpdater{
		started: make(chan struct{}),
		block:   make(chan struct{}),
		err:     errors.New("disk full"),
	}
	wb := NewSalesWriteBack(u, nil)
	p0 := figures("0", "0")

	first := syncAsync(wb, "p1", p0, figures("100", "10"))
	waitStarted(t, u)

	queued := syncAsync(wb, "p1", p0, figures("200", "20"))
	waitGeneration(t, wb, "p1", 2)

	close(u.block)
	res := <-first
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, ErrPersistence)

	q := <-queued
	require.Error(t, q.err, "the queued value was never stored")
	assert.ErrorIs(t, q.err, ErrPersistence)
	assert.Contains(t, q.err.Error(), "disk full")
	assert.False(t, q.written)
	assert.Empty(t, u.recorded())

	// The slot was released: the next computation writes.
	u.mu.Lock()
	u.err = nil
	u.mu.Unlock()
	written, err := wb.Sync(context.Background(), "p1", p0, figures("200", "20"))
	require.NoError(t, err)
	assert.True(t, written)
}

func TestSalesWriteBack_QueuedCallerHonoursContext(t *testing.T) {
	u := &recordingUpdater{started: make(chan struct{}), block: make(chan struct{})}
	wb := NewSalesWriteBack(u, nil)
	p0 := figures("0", "0")

	first := syncAsync(wb, "p1", p0, figures("100", "10"))
	waitStarted(t, u)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	written, err := wb.Sync(ctx, "p1", p0, figures("200", "20"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, written)

	close(u.block)
	require.NoError(t, (<-first).err)
}

func TestSalesWriteBack_NewerValueEqualToOriginalIsStillWritten(t *testing.T) {
	u := &recordingUpdater{started: make(chan struct{}), block: make(chan struct{})}
	wb := NewSalesWriteBack(u, nil)
	p0 := figures("10", "5")

	first := syncAsync(wb, "p1", p0, figures("100", "50"))
	waitStarted(t, u)

	// The sale was reverted while the first write was running.
	reverted := syncAsync(wb, "p1", p0, p0)
	waitGeneration(t, wb, "p1", 2)

	close(u.block)
	require.NoError(t, (<-first).err)
	require.NoError(t, (<-reverted).err)

	writes := u.recorded()
	require.Len(t, writes, 2)
	assert.True(t, writes[0].Equal(figures("100", "50")))
	assert.True(t, writes[1].Equal(p0), "stored value must not be left at the superseded figure")
}

func TestSalesWriteBack_RewritesWhenStoredValueChangedElsewhere(t *testing.T) {
	u := &recordingUpdater{}
	wb := NewSalesWriteBack(u, nil)
	ctx := context.Background()

	written, err := wb.Sync(ctx, "p1", figures("0", "0"), figures("100", "50"))
	require.NoError(t, err)
	require.True(t, written)

	// Another writer replaced the stored figures; last write wins, so the
	// live totals must be written again.
	written, err = wb.Sync(ctx, "p1", figures("300", "300"), figures("100", "50"))
	require.NoError(t, err)
	assert.True(t, written)

	writes := u.recorded()
	require.Len(t, writes, 2)
	assert.True(t, writes[1].Equal(figures("100", "50")))
}

func TestSalesWriteBack_ProjectsAreIndependent(t *testing.T) {
	u := &recordingUpdater{}
	wb := NewSalesWriteBack(u, nil)
	ctx := context.Background()

	_, err := wb.Sync(ctx, "p1", figures("0", "0"), figures("1", "1"))
	require.NoError(t, err)
	written, err := wb.Sync(ctx, "p2", figures("0", "0"), figures("1", "1"))
	require.NoError(t, err)
	assert.True(t, written)
	assert.Len(t, u.recorded(), 2)
}
