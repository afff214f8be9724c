package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/importer"
	"github.com/alexanderramin/encore/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	snap, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	fields := map[string]any{"short_id": snap.Project.ShortID}
	err = observe(ctx, s.observer, "import-project", fields, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return persistSnapshot(ctx, tx, snap)
		})
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:          snap.Project,
		BudgetItemCount:  snap.Project.Budget.ItemCount(),
		VenueCount:       len(snap.Venues),
		OccurrenceCount:  len(snap.Occurrences),
		OfferingCount:    len(snap.Offerings),
		TaskCount:        len(snap.Tasks),
		ActivityCount:    len(snap.Activities),
		SessionCount:     len(snap.Sessions),
		TransactionCount: len(snap.Transactions),
	}, nil
}

// persistSnapshot writes entities in dependency order so foreign keys hold.
func persistSnapshot(ctx context.Context, tx db.DBTX, snap *importer.Snapshot) error {
	if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, snap.Project); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	venues := repository.NewSQLiteVenueRepo(tx)
	for _, v := range snap.Venues {
		if err := venues.Create(ctx, v); err != nil {
			return fmt.Errorf("creating venue %q: %w", v.Name, err)
		}
	}

	occurrences := repository.NewSQLiteOccurrenceRepo(tx)
	for _, o := range snap.Occurrences {
		if err := occurrences.Create(ctx, o); err != nil {
			return fmt.Errorf("creating occurrence %q: %w", o.Title, err)
		}
	}

	offerings := repository.NewSQLiteTicketOfferingRepo(tx)
	for _, t := range snap.Offerings {
		if err := offerings.Create(ctx, t); err != nil {
			return fmt.Errorf("creating ticket offering %q: %w", t.Name, err)
		}
	}

	tasks := repository.NewSQLiteTaskRepo(tx)
	for _, t := range snap.Tasks {
		if err := tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("creating task %q: %w", t.Title, err)
		}
	}

	activities := repository.NewSQLiteActivityRepo(tx)
	for _, a := range snap.Activities {
		if err := activities.Create(ctx, a); err != nil {
			return fmt.Errorf("creating activity: %w", err)
		}
	}

	sessions := repository.NewSQLiteSaleSessionRepo(tx)
	for _, s := range snap.Sessions {
		if err := sessions.Create(ctx, s); err != nil {
			return fmt.Errorf("creating sale session %q: %w", s.Name, err)
		}
	}

	transactions := repository.NewSQLiteSalesTransactionRepo(tx)
	for _, t := range snap.Transactions {
		if err := transactions.Create(ctx, t); err != nil {
			return fmt.Errorf("creating sales transaction: %w", err)
		}
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
