package service

import (
	"context"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/importer"
	"github.com/alexanderramin/encore/internal/projection"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts a short ID (case-insensitive) or a full project ID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

// BudgetService edits a project's detailed budget. Each call applies one pure
// budget operation and persists the resulting document.
type BudgetService interface {
	AddItem(ctx context.Context, projectID string, c domain.Category, source string) (*domain.BudgetItem, bool, error)
	UpdateItem(ctx context.Context, projectID, itemID string, field domain.ItemField, value string) (bool, error)
	RemoveItem(ctx context.Context, projectID, itemID string) (bool, error)
	SetTicketActualRevenue(ctx context.Context, projectID, value string) error
	Get(ctx context.Context, projectID string) (domain.DetailedBudget, error)
}

type VenueService interface {
	Create(ctx context.Context, v *domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	Update(ctx context.Context, v *domain.Venue) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService manages occurrences and the ticket offerings sold for them.
type ScheduleService interface {
	CreateOccurrence(ctx context.Context, o *domain.Occurrence) error
	GetOccurrence(ctx context.Context, id string) (*domain.Occurrence, error)
	ListOccurrences(ctx context.Context, projectID string) ([]domain.Occurrence, error)
	UpdateOccurrence(ctx context.Context, o *domain.Occurrence) error
	SetOccurrenceStatus(ctx context.Context, id string, status domain.OccurrenceStatus) error
	DeleteOccurrence(ctx context.Context, id string) error

	CreateOffering(ctx context.Context, t *domain.TicketOffering) error
	ListOfferings(ctx context.Context, projectID string) ([]domain.TicketOffering, error)
	RecordSold(ctx context.Context, offeringID string, sold int) error
	DeleteOffering(ctx context.Context, id string) error
}

// WorkLogService manages tasks and the activities logged against them.
type WorkLogService interface {
	CreateTask(ctx context.Context, t *domain.Task) error
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	LogActivity(ctx context.Context, a *domain.Activity) error
	ListActivities(ctx context.Context, projectID string) ([]domain.Activity, error)
	ApproveActivity(ctx context.Context, id string) error
	DeleteActivity(ctx context.Context, id string) error
}

type SalesService interface {
	CreateSession(ctx context.Context, s *domain.SaleSession) error
	ListSessions(ctx context.Context, projectID string) ([]domain.SaleSession, error)
	DeleteSession(ctx context.Context, id string) error

	RecordTransaction(ctx context.Context, tx *domain.SalesTransaction) error
	ListTransactions(ctx context.Context, projectID string) ([]domain.SalesTransaction, error)
}

// BalanceResult is a computed balance together with the outcome of syncing
// live sales figures back to the project record.
type BalanceResult struct {
	Project *domain.Project
	Summary projection.BalanceSummary
	// SalesWritten is true when this computation persisted new sales figures.
	SalesWritten bool
}

type BalanceService interface {
	// Compute loads the project snapshot and returns its balance. When the
	// sales write-back fails the result is still returned, alongside an
	// error wrapping ErrPersistence.
	Compute(ctx context.Context, projectID string) (*BalanceResult, error)
}

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project          *domain.Project
	BudgetItemCount  int
	VenueCount       int
	OccurrenceCount  int
	OfferingCount    int
	TaskCount        int
	ActivityCount    int
	SessionCount     int
	TransactionCount int
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
