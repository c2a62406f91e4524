package dashboard

import (
	"context"
	"fmt"
	"time"

	"pawly/internal/domain/care"
	"pawly/internal/domain/pets"
	"pawly/internal/platform/formvalue"
)

type PetLister interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type CareReader interface {
	ListByPet(ctx context.Context, petID string) ([]care.Event, error)
	CountByOwner(ctx context.Context, ownerUserID string) (int, error)
	RecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]care.Event, error)
}

type Service struct {
	pets PetLister
	care CareReader
	now  func() time.Time
}

func NewService(pets PetLister, care CareReader) *Service {
	return &Service{
		pets: pets,
		care: care,
		now:  time.Now,
	}
}

// UserSummary se calcula en cada request; no hay cache.
func (s *Service) UserSummary(ctx context.Context, userID string) (UserSummary, error) {
	items, err := s.pets.ListByOwner(ctx, userID)
	if err != nil {
		return UserSummary{}, fmt.Errorf("list pets: %w", err)
	}

	total, err := s.care.CountByOwner(ctx, userID)
	if err != nil {
		return UserSummary{}, fmt.Errorf("count care events: %w", err)
	}

	recent, err := s.care.RecentByOwner(ctx, userID, RecentLimit)
	if err != nil {
		return UserSummary{}, fmt.Errorf("recent care events: %w", err)
	}

	names := make(map[string]string, len(items))
	for _, p := range items {
		names[p.ID] = p.Name
	}
	out := make([]RecentCare, 0, len(recent))
	for _, e := range recent {
		out = append(out, RecentCare{Event: e, PetName: names[e.PetID]})
	}

	return UserSummary{
		Pets:      items,
		TotalPets: len(items),
		TotalCare: total,
		Recent:    out,
	}, nil
}

// PetSummary asume que el caller ya pasó por el guard.
func (s *Service) PetSummary(ctx context.Context, p pets.Pet) (PetSummary, error) {
	events, err := s.care.ListByPet(ctx, p.ID)
	if err != nil {
		return PetSummary{}, fmt.Errorf("list care events: %w", err)
	}

	today := formvalue.Day(s.now())
	upcoming := make([]care.Event, 0)
	for _, e := range events {
		if e.Date != nil && !e.Date.Before(today) {
			upcoming = append(upcoming, e)
		}
	}

	return PetSummary{
		Pet:      p,
		Events:   events,
		Total:    len(events),
		Upcoming: upcoming,
	}, nil
}
