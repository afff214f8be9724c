package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/repository"
)

// SalesUpdater persists live sales figures onto a project record.
type SalesUpdater interface {
	UpdateSalesFigures(ctx context.Context, projectID string, f domain.SalesFigures) error
}

type uowSalesUpdater struct {
	uow db.UnitOfWork
}

// NewUoWSalesUpdater writes sales figures in their own transaction.
func NewUoWSalesUpdater(uow db.UnitOfWork) SalesUpdater {
	return &uowSalesUpdater{uow: uow}
}

func (u *uowSalesUpdater) UpdateSalesFigures(ctx context.Context, projectID string, f domain.SalesFigures) error {
	return u.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProjectRepo(tx).UpdateSalesFigures(ctx, projectID, f)
	})
}

type writeBackState struct {
	generation uint64
	latest     domain.SalesFigures
	written    *domain.SalesFigures
	// replaced holds the stored values the current written value overwrote.
	// A caller whose snapshot is one of them is reading from before our write.
	replaced []domain.SalesFigures
	inFlight *writeChain
}

// writeChain is one writer's run of consecutive writes. Callers queued
// behind it wait on done and share its outcome.
type writeChain struct {
	done chan struct{}
	err  error
}

// SalesWriteBack keeps a project's stored EstimatedSales/ActualSales in step
// with the live sales aggregation.
//
// Each Sync call is a new computation and bumps the project's generation.
// At most one write per project is in flight; a computation that arrives
// while a write is running is picked up by that writer when it finishes, so
// the last computed value is the one that ends up stored and values are
// never applied out of order. The queued caller waits for that writer and
// receives its error if the write fails.
//
// A value equal to the persisted one is never written. A value equal to the
// last one written is skipped only while the caller's persisted snapshot
// predates that write; if the record was changed elsewhere it is written
// again.
type SalesWriteBack struct {
	updater SalesUpdater
	logger  *slog.Logger

	mu     sync.Mutex
	states map[string]*writeBackState
}

func NewSalesWriteBack(updater SalesUpdater, logger *slog.Logger) *SalesWriteBack {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SalesWriteBack{
		updater: updater,
		logger:  logger,
		states:  make(map[string]*writeBackState),
	}
}

// Sync reconciles computed with persisted for projectID. It returns true when
// this call wrote at least one value. A failed write returns an error wrapping
// ErrPersistence, both to the writer and to every caller queued behind it;
// nothing is retried here.
func (w *SalesWriteBack) Sync(ctx context.Context, projectID string, persisted, computed domain.SalesFigures) (bool, error) {
	w.mu.Lock()
	st := w.stateFor(projectID)
	st.generation++
	st.latest = computed
	if chain := st.inFlight; chain != nil {
		w.mu.Unlock()
		w.logger.DebugContext(ctx, "sales write-back queued behind in-flight write", "project_id", projectID)
		return false, waitChain(ctx, chain)
	}
	chain := &writeChain{done: make(chan struct{})}
	st.inFlight = chain
	w.mu.Unlock()

	wrote := false
	for {
		w.mu.Lock()
		gen, target := st.generation, st.latest
		if target.Equal(persisted) || st.alreadyWritten(target, persisted) {
			w.release(st, nil)
			w.mu.Unlock()
			if !wrote {
				w.logger.DebugContext(ctx, "sales figures unchanged", "project_id", projectID)
			}
			return wrote, nil
		}
		w.mu.Unlock()

		if err := w.updater.UpdateSalesFigures(ctx, projectID, target); err != nil {
			err = fmt.Errorf("%w: writing sales figures for project %s: %w", ErrPersistence, projectID, err)
			w.mu.Lock()
			w.release(st, err)
			w.mu.Unlock()
			w.logger.WarnContext(ctx, "sales write-back failed", "project_id", projectID, "error", err)
			return wrote, err
		}
		w.logger.InfoContext(ctx, "sales figures written",
			"project_id", projectID,
			"estimated", target.Estimated.String(),
			"actual", target.Actual.String(),
		)

		err := w.settle(st, gen, persisted, target, !wrote)
		wrote = true
		persisted = target
		if errors.Is(err, ErrSuperseded) {
			w.logger.DebugContext(ctx, "sales write-back superseded", "project_id", projectID, "generation", gen)
			continue
		}
		return true, nil
	}
}

func waitChain(ctx context.Context, chain *writeChain) error {
	select {
	case <-chain.done:
		return chain.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// alreadyWritten reports whether target was stored by this process and the
// caller's persisted snapshot is one our writes replaced.
func (st *writeBackState) alreadyWritten(target, persisted domain.SalesFigures) bool {
	if st.written == nil || !target.Equal(*st.written) {
		return false
	}
	for _, old := range st.replaced {
		if persisted.Equal(old) {
			return true
		}
	}
	return false
}

// settle records target as written over persisted. It releases the in-flight
// slot unless a newer computation arrived during the write, in which case it
// returns ErrSuperseded and the caller keeps the slot.
func (w *SalesWriteBack) settle(st *writeBackState, gen uint64, persisted, target domain.SalesFigures, firstInChain bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if firstInChain {
		st.replaced = st.replaced[:0]
	}
	st.replaced = append(st.replaced, persisted)
	st.written = &target
	if st.generation != gen {
		return ErrSuperseded
	}
	w.release(st, nil)
	return nil
}

// release ends the in-flight chain with err. w.mu must be held.
func (w *SalesWriteBack) release(st *writeBackState, err error) {
	chain := st.inFlight
	if chain == nil {
		return
	}
	st.inFlight = nil
	chain.err = err
	close(chain.done)
}

func (w *SalesWriteBack) stateFor(projectID string) *writeBackState {
	st, ok := w.states[projectID]
	if !ok {
		st = &writeBackState{}
		w.states[projectID] = st
	}
	return st
}
