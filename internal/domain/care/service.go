package care

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawly/internal/platform/apperror"
	"pawly/internal/platform/formvalue"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Input llega tal cual del formulario: fecha y custo inválidos quedan en nil.
type Input struct {
	Type        string
	Description string
	Date        string
	Notes       string
	Cost        string
}

// Create no verifica la mascota: el guard ya la resolvió en el handler.
func (s *Service) Create(ctx context.Context, petID string, in Input) (Event, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Event{}, apperror.NotFound("pet", petID)
	}
	typ := formvalue.Text(in.Type)
	if typ == "" {
		return Event{}, apperror.ValidationFailed("tipo", "type is required")
	}

	e := Event{
		ID:          uuid.Must(uuid.NewV7()).String(),
		PetID:       petID,
		Type:        typ,
		Description: formvalue.Text(in.Description),
		Date:        formvalue.Date(in.Date),
		Notes:       formvalue.Text(in.Notes),
		Cost:        formvalue.Float(in.Cost),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, fmt.Errorf("create care event: %w", err)
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, apperror.NotFound("care event", id)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.NotFound("care event", id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Event, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) RecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]Event, error) {
	if limit <= 0 {
		return []Event{}, nil
	}
	return s.repo.RecentByOwner(ctx, ownerUserID, limit)
}

func (s *Service) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	return s.repo.CountByOwner(ctx, ownerUserID)
}

// OwnerOfCare implementa ownership.CareOwners.
func (s *Service) OwnerOfCare(ctx context.Context, careID string) (string, error) {
	careID = strings.TrimSpace(careID)
	if careID == "" {
		return "", apperror.NotFound("care event", careID)
	}
	return s.repo.OwnerOf(ctx, careID)
}
