package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/projection"
	"github.com/alexanderramin/encore/internal/repository"
)

// BalanceSources are the read-side repositories a balance is computed from.
type BalanceSources struct {
	Projects     repository.ProjectRepo
	Venues       repository.VenueRepo
	Occurrences  repository.OccurrenceRepo
	Offerings    repository.TicketOfferingRepo
	Tasks        repository.TaskRepo
	Activities   repository.ActivityRepo
	Sessions     repository.SaleSessionRepo
	Transactions repository.SalesTransactionRepo
}

type pipelineSlot struct {
	mu       sync.Mutex
	pipeline *projection.Pipeline
}

type balanceService struct {
	src       BalanceSources
	writeBack *SalesWriteBack
	opts      projection.VenueOptions
	labels    map[string]string
	observer  UseCaseObserver

	mu    sync.Mutex
	slots map[string]*pipelineSlot
}

// NewBalanceService keeps one recomputation pipeline per project for the
// lifetime of the service, so repeated computations only redo the streams
// whose inputs changed. labels overrides source display labels.
func NewBalanceService(
	src BalanceSources,
	writeBack *SalesWriteBack,
	opts projection.VenueOptions,
	labels map[string]string,
	observers ...UseCaseObserver,
) BalanceService {
	return &balanceService{
		src:       src,
		writeBack: writeBack,
		opts:      opts,
		labels:    labels,
		observer:  useCaseObserverOrNoop(observers),
		slots:     make(map[string]*pipelineSlot),
	}
}

func (s *balanceService) Compute(ctx context.Context, projectID string) (*BalanceResult, error) {
	var result *BalanceResult
	fields := map[string]any{"project_id": projectID}
	err := observe(ctx, s.observer, "compute-balance", fields, func() error {
		project, in, err := s.loadInputs(ctx, projectID)
		if err != nil {
			return err
		}

		summary, recomputed, err := s.summarize(projectID, in)
		if err != nil {
			return err
		}
		fields["recomputed"] = recomputed
		fields["balance"] = summary.Balance.String()

		result = &BalanceResult{Project: project, Summary: summary}
		if s.writeBack == nil {
			return nil
		}
		computed := summary.SalesFigures()
		written, wbErr := s.writeBack.Sync(ctx, projectID, project.PersistedSales(), computed)
		result.SalesWritten = written
		fields["sales_written"] = written
		if written {
			project.EstimatedSales = computed.Estimated
			project.ActualSales = computed.Actual
		}
		return wbErr
	})
	return result, err
}

func (s *balanceService) summarize(projectID string, in projection.Inputs) (projection.BalanceSummary, bool, error) {
	slot := s.slotFor(projectID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	changed, err := slot.pipeline.Update(in)
	if err != nil {
		return projection.BalanceSummary{}, false, fmt.Errorf("updating projection inputs: %w", err)
	}
	return slot.pipeline.Summary(), changed, nil
}

func (s *balanceService) slotFor(projectID string) *pipelineSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[projectID]
	if !ok {
		slot = &pipelineSlot{pipeline: projection.NewPipeline(s.opts)}
		s.slots[projectID] = slot
	}
	return slot
}

// loadInputs reads a snapshot of everything the balance depends on. Venues
// are global, so all of them are loaded.
func (s *balanceService) loadInputs(ctx context.Context, projectID string) (*domain.Project, projection.Inputs, error) {
	var in projection.Inputs

	project, err := s.src.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, in, fmt.Errorf("loading project: %w", err)
	}
	in.ProjectID = project.ID
	in.Budget = project.Budget
	in.Labels = s.labels

	if in.Occurrences, err = s.src.Occurrences.ListByProject(ctx, projectID); err != nil {
		return nil, in, fmt.Errorf("loading occurrences: %w", err)
	}
	if in.Venues, err = s.src.Venues.List(ctx); err != nil {
		return nil, in, fmt.Errorf("loading venues: %w", err)
	}
	if in.Offerings, err = s.src.Offerings.ListByProject(ctx, projectID); err != nil {
		return nil, in, fmt.Errorf("loading ticket offerings: %w", err)
	}
	if in.Tasks, err = s.src.Tasks.ListByProject(ctx, projectID); err != nil {
		return nil, in, fmt.Errorf("loading tasks: %w", err)
	}
	if in.Activities, err = s.src.Activities.ListByProject(ctx, projectID); err != nil {
		return nil, in, fmt.Errorf("loading activities: %w", err)
	}
	if in.Sessions, err = s.src.Sessions.ListByProject(ctx, projectID); err != nil {
		return nil, in, fmt.Errorf("loading sale sessions: %w", err)
	}
	if in.Transactions, err = s.src.Transactions.ListByProject(ctx, projectID); err != nil {
		return nil, in, fmt.Errorf("loading sales transactions: %w", err)
	}
	return project, in, nil
}
