package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/google/uuid"
)

type venueService struct {
	venues   repository.VenueRepo
	observer UseCaseObserver
}

func NewVenueService(venues repository.VenueRepo, observers ...UseCaseObserver) VenueService {
	return &venueService{venues: venues, observer: useCaseObserverOrNoop(observers)}
}

func (s *venueService) Create(ctx context.Context, v *domain.Venue) error {
	if err := normalizeVenue(v); err != nil {
		return err
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return observe(ctx, s.observer, "create-venue", map[string]any{"venue": v.Name}, func() error {
		return s.venues.Create(ctx, v)
	})
}

func (s *venueService) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

func (s *venueService) List(ctx context.Context) ([]domain.Venue, error) {
	return s.venues.List(ctx)
}

func (s *venueService) Update(ctx context.Context, v *domain.Venue) error {
	if err := normalizeVenue(v); err != nil {
		return err
	}
	return s.venues.Update(ctx, v)
}

func (s *venueService) Delete(ctx context.Context, id string) error {
	return s.venues.Delete(ctx, id)
}

func normalizeVenue(v *domain.Venue) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return fmt.Errorf("venue name is required")
	}
	if v.Capacity < 0 {
		return fmt.Errorf("venue capacity must not be negative")
	}
	return normalizeCostModel(&v.Default)
}

func normalizeCostModel(m *domain.CostModel) error {
	switch m.Type {
	case "":
		m.Type = domain.CostFree
	case domain.CostFree, domain.CostRented, domain.CostInKind:
	default:
		return fmt.Errorf("invalid cost type %q (free, rented, in_kind)", m.Type)
	}
	switch m.Period {
	case "":
		m.Period = domain.PeriodFlatRate
	case domain.PeriodFlatRate, domain.PeriodPerDay, domain.PeriodPerHour:
	default:
		return fmt.Errorf("invalid cost period %q (flat_rate, per_day, per_hour)", m.Period)
	}
	if m.Amount.IsNegative() {
		return fmt.Errorf("venue cost must not be negative")
	}
	return nil
}
