package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/google/uuid"
)

type salesService struct {
	sessions     repository.SaleSessionRepo
	transactions repository.SalesTransactionRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewSalesService(
	sessions repository.SaleSessionRepo,
	transactions repository.SalesTransactionRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SalesService {
	return &salesService{
		sessions:     sessions,
		transactions: transactions,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// CreateSession stores a sale session after checking that its association
// target exists: the project for project sessions, the occurrence for event
// sessions.
func (s *salesService) CreateSession(ctx context.Context, session *domain.SaleSession) error {
	session.Name = strings.TrimSpace(session.Name)
	if session.Name == "" {
		return fmt.Errorf("sale session name is required")
	}
	if session.ExpectedRevenue.IsNegative() {
		return fmt.Errorf("expected revenue must not be negative")
	}
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		switch session.AssociationType {
		case domain.AssociationProject:
			session.EventID = ""
			if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, session.ProjectID); err != nil {
				return fmt.Errorf("loading project: %w", err)
			}
		case domain.AssociationEvent:
			session.ProjectID = ""
			if _, err := repository.NewSQLiteOccurrenceRepo(tx).GetByID(ctx, session.EventID); err != nil {
				return fmt.Errorf("loading occurrence: %w", err)
			}
		default:
			return fmt.Errorf("invalid association type %q (project, event)", session.AssociationType)
		}
		return repository.NewSQLiteSaleSessionRepo(tx).Create(ctx, session)
	})
}

func (s *salesService) ListSessions(ctx context.Context, projectID string) ([]domain.SaleSession, error) {
	return s.sessions.ListByProject(ctx, projectID)
}

func (s *salesService) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func (s *salesService) RecordTransaction(ctx context.Context, tx *domain.SalesTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.RecordedAt.IsZero() {
		tx.RecordedAt = time.Now().UTC()
	}
	fields := map[string]any{"session_id": tx.SaleSessionID, "total": tx.Total.String()}
	return observe(ctx, s.observer, "record-sale", fields, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, dbtx db.DBTX) error {
			if _, err := repository.NewSQLiteSaleSessionRepo(dbtx).GetByID(ctx, tx.SaleSessionID); err != nil {
				return fmt.Errorf("loading sale session: %w", err)
			}
			return repository.NewSQLiteSalesTransactionRepo(dbtx).Create(ctx, tx)
		})
	})
}

func (s *salesService) ListTransactions(ctx context.Context, projectID string) ([]domain.SalesTransaction, error) {
	return s.transactions.ListByProject(ctx, projectID)
}
