package memory

import (
	"sync"

	"pawly/internal/domain/care"
	"pawly/internal/domain/pets"
	"pawly/internal/domain/users"
)

// Store guarda todo bajo un solo mutex: el cascade de mascota -> cuidados
// y los joins por dueño se ven atómicos. Sirve para dev y tests.
type Store struct {
	mu sync.RWMutex

	users       map[string]users.User
	userByEmail map[string]string
	pets        map[string]pets.Pet
	care        map[string]care.Event
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]users.User),
		userByEmail: make(map[string]string),
		pets:        make(map[string]pets.Pet),
		care:        make(map[string]care.Event),
	}
}

func (s *Store) Users() users.Repository { return &userRepo{s: s} }
func (s *Store) Pets() pets.Repository   { return &petRepo{s: s} }
func (s *Store) Care() care.Repository   { return &careRepo{s: s} }
