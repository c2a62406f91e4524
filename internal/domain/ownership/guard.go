package ownership

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pawly/internal/platform/apperror"
)

var ErrInvalidMode = errors.New("deny mode must be DenyRedirect or DenyForbidden")

// PetOwners resuelve el dueño de una mascota.
// Se usa una interfaz para evitar ciclos de imports (pets -> ownership).
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// CareOwners resuelve el dueño de un cuidado a través de su mascota (un join).
type CareOwners interface {
	OwnerOfCare(ctx context.Context, careID string) (string, error)
}

type Guard struct {
	pets PetOwners
	care CareOwners
}

func NewGuard(pets PetOwners, care CareOwners) *Guard {
	return &Guard{pets: pets, care: care}
}

// CheckPet: mode es la respuesta que elige el call site cuando no es el dueño.
func (g *Guard) CheckPet(ctx context.Context, requesterID, petID string, mode Decision) (Decision, error) {
	if err := validMode(mode); err != nil {
		return mode, err
	}
	return decide(requesterID, mode)(g.pets.OwnerOf(ctx, strings.TrimSpace(petID)))
}

func (g *Guard) CheckCare(ctx context.Context, requesterID, careID string, mode Decision) (Decision, error) {
	if err := validMode(mode); err != nil {
		return mode, err
	}
	return decide(requesterID, mode)(g.care.OwnerOfCare(ctx, strings.TrimSpace(careID)))
}

func decide(requesterID string, mode Decision) func(string, error) (Decision, error) {
	return func(ownerID string, err error) (Decision, error) {
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return NotFound, nil
			}
			return NotFound, fmt.Errorf("resolve owner: %w", err)
		}
		requesterID = strings.TrimSpace(requesterID)
		if requesterID == "" || ownerID != requesterID {
			return mode, nil
		}
		return Allow, nil
	}
}

func validMode(mode Decision) error {
	if mode != DenyRedirect && mode != DenyForbidden {
		return ErrInvalidMode
	}
	return nil
}
