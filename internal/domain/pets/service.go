package pets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawly/internal/domain/attachments"
	"pawly/internal/platform/apperror"
	"pawly/internal/platform/formvalue"
)

// PhotoResolver decide la referencia de la foto (ver attachments.Resolver).
type PhotoResolver interface {
	Resolve(ctx context.Context, up *attachments.Upload, urlText string, previous *string) (*string, error)
}

type Service struct {
	repo   Repository
	photos PhotoResolver
	now    func() time.Time
}

func NewService(repo Repository, photos PhotoResolver) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		now:    time.Now,
	}
}

// Input llega tal cual del formulario; los campos numéricos y la fecha
// inválidos se guardan como nil en vez de rechazar el envío.
type Input struct {
	Name      string
	Species   string
	Breed     string
	Age       string
	Weight    string
	BirthDate string
	PhotoURL  string
	Photo     *attachments.Upload
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, apperror.Unauthenticated("login required")
	}
	name := formvalue.Text(in.Name)
	if name == "" {
		return Pet{}, apperror.ValidationFailed("nome", "name is required")
	}

	photo, err := s.photos.Resolve(ctx, in.Photo, in.PhotoURL, nil)
	if err != nil {
		return Pet{}, fmt.Errorf("resolve photo: %w", err)
	}

	now := s.now().UTC()
	p := Pet{
		ID:          uuid.Must(uuid.NewV7()).String(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Species:     formvalue.Text(in.Species),
		Breed:       formvalue.Text(in.Breed),
		Age:         formvalue.Int(in.Age),
		Weight:      formvalue.Float(in.Weight),
		BirthDate:   formvalue.Date(in.BirthDate),
		Photo:       photo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("create pet: %w", err)
	}
	return p, nil
}

// Update reemplaza todos los campos menos id y dueño.
// Fecha de nacimiento vacía conserva la guardada; la foto solo cambia si llega algo nuevo.
// Sin control de concurrencia: gana la última escritura.
func (s *Service) Update(ctx context.Context, id string, in Input) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	name := formvalue.Text(in.Name)
	if name == "" {
		return Pet{}, apperror.ValidationFailed("nome", "name is required")
	}

	photo, err := s.photos.Resolve(ctx, in.Photo, in.PhotoURL, p.Photo)
	if err != nil {
		return Pet{}, fmt.Errorf("resolve photo: %w", err)
	}

	p.Name = name
	p.Species = formvalue.Text(in.Species)
	p.Breed = formvalue.Text(in.Breed)
	p.Age = formvalue.Int(in.Age)
	p.Weight = formvalue.Float(in.Weight)
	if strings.TrimSpace(in.BirthDate) != "" {
		p.BirthDate = formvalue.Date(in.BirthDate)
	}
	p.Photo = photo
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("update pet: %w", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.NotFound("pet", id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, apperror.NotFound("pet", id)
	}
	return s.repo.GetByID(ctx, id)
}

// OwnerOf alimenta ownership.Guard: ErrNotFound si la mascota no existe.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	return s.repo.CountByOwner(ctx, ownerUserID)
}
