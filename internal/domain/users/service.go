package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawly/internal/platform/apperror"
)

const (
	MsgPasswordsDiffer    = "passwords differ"
	MsgEmailTaken         = "email already registered"
	MsgInvalidCredentials = "invalid credentials"
)

type Service struct {
	repo   Repository
	hasher PasswordHasher
	now    func() time.Time
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// Register crea el usuario; la sesión la emite el caller.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)

	if in.Password != in.Confirm {
		return User{}, apperror.ValidationFailed("confirma", MsgPasswordsDiffer)
	}
	if email == "" {
		return User{}, apperror.ValidationFailed("email", "email is required")
	}
	if in.Password == "" {
		return User{}, apperror.ValidationFailed("senha", "password is required")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, apperror.ValidationFailed("email", MsgEmailTaken)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return User{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, apperror.ValidationFailed("senha", err.Error())
	}

	u := User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// carrera entre dos registros con el mismo email: gana el índice único
		if errors.Is(err, apperror.ErrConflict) {
			return User{}, apperror.ValidationFailed("email", MsgEmailTaken)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate no distingue email inexistente de contraseña incorrecta.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return User{}, apperror.Unauthenticated(MsgInvalidCredentials)
		}
		return User{}, fmt.Errorf("lookup email: %w", err)
	}

	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		return User{}, apperror.Unauthenticated(MsgInvalidCredentials)
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, apperror.NotFound("user", id)
	}
	return s.repo.GetByID(ctx, id)
}
