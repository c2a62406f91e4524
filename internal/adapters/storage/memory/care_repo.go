package memory

import (
	"context"
	"errors"
	"strings"

	"pawly/internal/domain/care"
	"pawly/internal/platform/apperror"
)

type careRepo struct {
	s *Store
}

func (r *careRepo) Create(_ context.Context, e care.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("care event id required")
	}
	if _, exists := r.s.care[e.ID]; exists {
		return apperror.Conflict("care event", e.ID)
	}
	if _, ok := r.s.pets[e.PetID]; !ok {
		return apperror.NotFound("pet", e.PetID)
	}
	r.s.care[e.ID] = e
	return nil
}

func (r *careRepo) GetByID(_ context.Context, id string) (care.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.care[id]
	if !ok {
		return care.Event{}, apperror.NotFound("care event", id)
	}
	return e, nil
}

func (r *careRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.care[id]; !ok {
		return apperror.NotFound("care event", id)
	}
	delete(r.s.care, id)
	return nil
}

func (r *careRepo) ListByPet(_ context.Context, petID string) ([]care.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]care.Event, 0)
	for _, e := range r.s.care {
		if e.PetID == petID {
			out = append(out, e)
		}
	}
	care.SortNewestFirst(out)
	return out, nil
}

func (r *careRepo) RecentByOwner(_ context.Context, ownerUserID string, limit int) ([]care.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.byOwnerLocked(ownerUserID)
	care.SortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *careRepo) CountByOwner(_ context.Context, ownerUserID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.byOwnerLocked(ownerUserID)), nil
}

func (r *careRepo) OwnerOf(_ context.Context, careID string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.care[careID]
	if !ok {
		return "", apperror.NotFound("care event", careID)
	}
	p, ok := r.s.pets[e.PetID]
	if !ok {
		return "", apperror.NotFound("pet", e.PetID)
	}
	return p.OwnerUserID, nil
}

// byOwnerLocked es el "join" care -> pets; requiere el lock tomado.
func (r *careRepo) byOwnerLocked(ownerUserID string) []care.Event {
	out := make([]care.Event, 0)
	for _, e := range r.s.care {
		if p, ok := r.s.pets[e.PetID]; ok && p.OwnerUserID == ownerUserID {
			out = append(out, e)
		}
	}
	return out
}
