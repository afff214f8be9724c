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

type scheduleService struct {
	occurrences repository.OccurrenceRepo
	offerings   repository.TicketOfferingRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewScheduleService(
	occurrences repository.OccurrenceRepo,
	offerings repository.TicketOfferingRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		occurrences: occurrences,
		offerings:   offerings,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) CreateOccurrence(ctx context.Context, o *domain.Occurrence) error {
	if err := normalizeOccurrence(o); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	fields := map[string]any{"project_id": o.ProjectID, "status": string(o.Status)}
	return observe(ctx, s.observer, "create-occurrence", fields, func() error {
		return s.occurrences.Create(ctx, o)
	})
}

func (s *scheduleService) GetOccurrence(ctx context.Context, id string) (*domain.Occurrence, error) {
	return s.occurrences.GetByID(ctx, id)
}

func (s *scheduleService) ListOccurrences(ctx context.Context, projectID string) ([]domain.Occurrence, error) {
	return s.occurrences.ListByProject(ctx, projectID)
}

func (s *scheduleService) UpdateOccurrence(ctx context.Context, o *domain.Occurrence) error {
	if err := normalizeOccurrence(o); err != nil {
		return err
	}
	return s.occurrences.Update(ctx, o)
}

func (s *scheduleService) SetOccurrenceStatus(ctx context.Context, id string, status domain.OccurrenceStatus) error {
	if !validOccurrenceStatus(status) {
		return fmt.Errorf("invalid occurrence status %q", status)
	}
	fields := map[string]any{"occurrence_id": id, "status": string(status)}
	return observe(ctx, s.observer, "set-occurrence-status", fields, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txOccurrences := repository.NewSQLiteOccurrenceRepo(tx)

			o, err := txOccurrences.GetByID(ctx, id)
			if err != nil {
				return err
			}
			o.Status = status
			return txOccurrences.Update(ctx, o)
		})
	})
}

func (s *scheduleService) DeleteOccurrence(ctx context.Context, id string) error {
	return s.occurrences.Delete(ctx, id)
}

func (s *scheduleService) CreateOffering(ctx context.Context, t *domain.TicketOffering) error {
	if t.Price.IsNegative() {
		return fmt.Errorf("ticket price must not be negative")
	}
	if t.CapacityOverride < 0 || t.SoldCount < 0 {
		return fmt.Errorf("ticket capacity and sold count must not be negative")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteOccurrenceRepo(tx).GetByID(ctx, t.OccurrenceID); err != nil {
			return fmt.Errorf("loading occurrence: %w", err)
		}
		return repository.NewSQLiteTicketOfferingRepo(tx).Create(ctx, t)
	})
}

func (s *scheduleService) ListOfferings(ctx context.Context, projectID string) ([]domain.TicketOffering, error) {
	return s.offerings.ListByProject(ctx, projectID)
}

func (s *scheduleService) RecordSold(ctx context.Context, offeringID string, sold int) error {
	if sold < 0 {
		return fmt.Errorf("sold count must not be negative")
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOfferings := repository.NewSQLiteTicketOfferingRepo(tx)

		t, err := txOfferings.GetByID(ctx, offeringID)
		if err != nil {
			return err
		}
		t.SoldCount = sold
		return txOfferings.Update(ctx, t)
	})
}

func (s *scheduleService) DeleteOffering(ctx context.Context, id string) error {
	return s.offerings.Delete(ctx, id)
}

func validOccurrenceStatus(st domain.OccurrenceStatus) bool {
	switch st {
	case domain.OccurrenceScheduled, domain.OccurrenceConfirmed, domain.OccurrenceCompleted,
		domain.OccurrencePending, domain.OccurrenceCancelled:
		return true
	}
	return false
}

func normalizeOccurrence(o *domain.Occurrence) error {
	if o.ProjectID == "" {
		return fmt.Errorf("occurrence must belong to a project")
	}
	if o.StartDate.IsZero() {
		return fmt.Errorf("occurrence start date is required")
	}
	if o.Status == "" {
		o.Status = domain.OccurrenceScheduled
	}
	if !validOccurrenceStatus(o.Status) {
		return fmt.Errorf("invalid occurrence status %q", o.Status)
	}
	o.StartTime = strings.TrimSpace(o.StartTime)
	o.EndTime = strings.TrimSpace(o.EndTime)
	for _, v := range []string{o.StartTime, o.EndTime} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("15:04", v); err != nil {
			return fmt.Errorf("invalid time %q (expected HH:MM)", v)
		}
	}
	if o.VenueCostOverride != nil {
		if err := normalizeCostModel(o.VenueCostOverride); err != nil {
			return fmt.Errorf("cost override: %w", err)
		}
	}
	return nil
}
