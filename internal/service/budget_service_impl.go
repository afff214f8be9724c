package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/google/uuid"
)

type budgetService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	newID    func() string
}

func NewBudgetService(projects repository.ProjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) BudgetService {
	return &budgetService{
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		newID:    func() string { return uuid.New().String() },
	}
}

func (s *budgetService) Get(ctx context.Context, projectID string) (domain.DetailedBudget, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.DetailedBudget{}, fmt.Errorf("loading project: %w", err)
	}
	return p.Budget, nil
}

func (s *budgetService) AddItem(ctx context.Context, projectID string, c domain.Category, source string) (*domain.BudgetItem, bool, error) {
	var item domain.BudgetItem
	var added bool
	fields := map[string]any{"project_id": projectID, "category": string(c), "source": source}
	err := observe(ctx, s.observer, "budget-add-item", fields, func() error {
		return s.edit(ctx, projectID, func(b domain.DetailedBudget) (domain.DetailedBudget, bool) {
			var next domain.DetailedBudget
			next, item, added = b.AddItem(c, source, s.newID())
			return next, added
		})
	})
	if err != nil {
		return nil, false, err
	}
	if !added {
		return nil, false, nil
	}
	return &item, true, nil
}

func (s *budgetService) UpdateItem(ctx context.Context, projectID, itemID string, field domain.ItemField, value string) (bool, error) {
	var ok bool
	fields := map[string]any{"project_id": projectID, "item_id": itemID, "field": string(field)}
	err := observe(ctx, s.observer, "budget-update-item", fields, func() error {
		return s.edit(ctx, projectID, func(b domain.DetailedBudget) (domain.DetailedBudget, bool) {
			var next domain.DetailedBudget
			next, ok = b.UpdateItem(itemID, field, value)
			return next, ok
		})
	})
	return ok, err
}

func (s *budgetService) RemoveItem(ctx context.Context, projectID, itemID string) (bool, error) {
	var ok bool
	fields := map[string]any{"project_id": projectID, "item_id": itemID}
	err := observe(ctx, s.observer, "budget-remove-item", fields, func() error {
		return s.edit(ctx, projectID, func(b domain.DetailedBudget) (domain.DetailedBudget, bool) {
			var next domain.DetailedBudget
			next, ok = b.RemoveItem(itemID)
			return next, ok
		})
	})
	return ok, err
}

func (s *budgetService) SetTicketActualRevenue(ctx context.Context, projectID, value string) error {
	fields := map[string]any{"project_id": projectID}
	return observe(ctx, s.observer, "budget-set-ticket-actual", fields, func() error {
		return s.edit(ctx, projectID, func(b domain.DetailedBudget) (domain.DetailedBudget, bool) {
			return b.SetTicketActualRevenue(value), true
		})
	})
}

// edit loads the budget, applies op and stores the result in one
// transaction, so concurrent edits serialize on the database. A no-op edit
// writes nothing.
func (s *budgetService) edit(ctx context.Context, projectID string, op func(domain.DetailedBudget) (domain.DetailedBudget, bool)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)

		p, err := txProjects.GetByID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("loading project: %w", err)
		}
		next, changed := op(p.Budget)
		if !changed {
			return nil
		}
		if err := txProjects.UpdateBudget(ctx, projectID, next); err != nil {
			return fmt.Errorf("%w: saving budget: %w", ErrPersistence, err)
		}
		return nil
	})
}
