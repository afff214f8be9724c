package repository

import (
	"context"

	"github.com/alexanderramin/encore/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// UpdateBudget replaces the stored budget document. Last write wins.
	UpdateBudget(ctx context.Context, id string, b domain.DetailedBudget) error
	// UpdateSalesFigures is the partial update written back from the live
	// sales aggregation.
	UpdateSalesFigures(ctx context.Context, id string, f domain.SalesFigures) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type VenueRepo interface {
	Create(ctx context.Context, v *domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	Update(ctx context.Context, v *domain.Venue) error
	Delete(ctx context.Context, id string) error
}

type OccurrenceRepo interface {
	Create(ctx context.Context, o *domain.Occurrence) error
	GetByID(ctx context.Context, id string) (*domain.Occurrence, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Occurrence, error)
	Update(ctx context.Context, o *domain.Occurrence) error
	Delete(ctx context.Context, id string) error
}

type TicketOfferingRepo interface {
	Create(ctx context.Context, t *domain.TicketOffering) error
	GetByID(ctx context.Context, id string) (*domain.TicketOffering, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.TicketOffering, error)
	Update(ctx context.Context, t *domain.TicketOffering) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Activity, error)
	UpdateStatus(ctx context.Context, id string, status domain.ActivityStatus) error
	Delete(ctx context.Context, id string) error
}

type SaleSessionRepo interface {
	Create(ctx context.Context, s *domain.SaleSession) error
	GetByID(ctx context.Context, id string) (*domain.SaleSession, error)
	// ListByProject returns sessions tied to the project directly or through
	// any of its occurrences.
	ListByProject(ctx context.Context, projectID string) ([]domain.SaleSession, error)
	Delete(ctx context.Context, id string) error
}

type SalesTransactionRepo interface {
	Create(ctx context.Context, tx *domain.SalesTransaction) error
	ListByProject(ctx context.Context, projectID string) ([]domain.SalesTransaction, error)
	Delete(ctx context.Context, id string) error
}
