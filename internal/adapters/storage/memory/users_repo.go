package memory

import (
	"context"
	"errors"
	"strings"

	"pawly/internal/domain/users"
	"pawly/internal/platform/apperror"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.s.userByEmail[u.Email]; exists {
		return apperror.Conflict("user", u.Email)
	}
	r.s.users[u.ID] = u
	r.s.userByEmail[u.Email] = u.ID
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, apperror.NotFound("user", id)
	}
	return u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.userByEmail[email]
	if !ok {
		return users.User{}, apperror.NotFound("user", email)
	}
	return r.s.users[id], nil
}
