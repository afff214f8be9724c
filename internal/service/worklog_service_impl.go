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

type workLogService struct {
	tasks      repository.TaskRepo
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewWorkLogService(
	tasks repository.TaskRepo,
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) WorkLogService {
	return &workLogService{
		tasks:      tasks,
		activities: activities,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// CreateTask stores a task. A linked budget item must exist as an expense
// line of the task's project at creation time; it may be removed later, in
// which case its actuals become unattributed.
func (s *workLogService) CreateTask(ctx context.Context, t *domain.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	switch t.WorkType {
	case "":
		t.WorkType = domain.WorkPaid
	case domain.WorkPaid, domain.WorkInKind, domain.WorkVolunteer:
	default:
		return fmt.Errorf("invalid work type %q (paid, in_kind, volunteer)", t.WorkType)
	}
	if t.HourlyRate.IsNegative() {
		return fmt.Errorf("hourly rate must not be negative")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		p, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, t.ProjectID)
		if err != nil {
			return fmt.Errorf("loading project: %w", err)
		}
		if t.BudgetItemID != "" {
			c, _, ok := p.Budget.FindItem(t.BudgetItemID)
			if !ok {
				return fmt.Errorf("budget item %s not found in project %s", t.BudgetItemID, p.DisplayID())
			}
			if c.IsRevenue() {
				return fmt.Errorf("budget item %s is a revenue line; tasks link to expenses", t.BudgetItemID)
			}
		}
		return repository.NewSQLiteTaskRepo(tx).Create(ctx, t)
	})
}

func (s *workLogService) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *workLogService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// LogActivity records time against a task. New activities start pending and
// produce no actuals until approved.
func (s *workLogService) LogActivity(ctx context.Context, a *domain.Activity) error {
	if a.Hours.IsNegative() {
		return fmt.Errorf("hours must not be negative")
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}
	if a.Status == "" {
		a.Status = domain.ActivityPending
	}
	a.CreatedAt = time.Now().UTC()

	fields := map[string]any{"task_id": a.TaskID, "hours": a.Hours.String()}
	return observe(ctx, s.observer, "log-activity", fields, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if _, err := repository.NewSQLiteTaskRepo(tx).GetByID(ctx, a.TaskID); err != nil {
				return fmt.Errorf("loading task: %w", err)
			}
			return repository.NewSQLiteActivityRepo(tx).Create(ctx, a)
		})
	})
}

func (s *workLogService) ListActivities(ctx context.Context, projectID string) ([]domain.Activity, error) {
	return s.activities.ListByProject(ctx, projectID)
}

func (s *workLogService) ApproveActivity(ctx context.Context, id string) error {
	return observe(ctx, s.observer, "approve-activity", map[string]any{"activity_id": id}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txActivities := repository.NewSQLiteActivityRepo(tx)

			a, err := txActivities.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if a.Status == domain.ActivityApproved {
				return nil
			}
			if err := a.Approve(); err != nil {
				return err
			}
			return txActivities.UpdateStatus(ctx, id, a.Status)
		})
	})
}

func (s *workLogService) DeleteActivity(ctx context.Context, id string) error {
	return s.activities.Delete(ctx, id)
}
