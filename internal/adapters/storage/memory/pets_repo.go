package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pawly/internal/domain/pets"
	"pawly/internal/platform/apperror"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(_ context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return apperror.Conflict("pet", p.ID)
	}
	if _, ok := r.s.users[p.OwnerUserID]; !ok {
		return apperror.NotFound("user", p.OwnerUserID)
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Update(_ context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, exists := r.s.pets[p.ID]
	if !exists {
		return apperror.NotFound("pet", p.ID)
	}
	// el dueño no se reasigna
	p.OwnerUserID = current.OwnerUserID
	p.CreatedAt = current.CreatedAt
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[id]; !exists {
		return apperror.NotFound("pet", id)
	}
	for careID, e := range r.s.care {
		if e.PetID == id {
			delete(r.s.care, careID)
		}
	}
	delete(r.s.pets, id)
	return nil
}

func (r *petRepo) GetByID(_ context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, apperror.NotFound("pet", id)
	}
	return p, nil
}

func (r *petRepo) ListByOwner(_ context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	// orden de alta (ids UUIDv7)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *petRepo) CountByOwner(_ context.Context, ownerUserID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, p := range r.s.pets {
		if p.OwnerUserID == ownerUserID {
			n++
		}
	}
	return n, nil
}
