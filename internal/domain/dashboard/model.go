package dashboard

import (
	"pawly/internal/domain/care"
	"pawly/internal/domain/pets"
)

// RecentLimit es cuántos cuidados muestra el dashboard del usuario.
const RecentLimit = 5

type RecentCare struct {
	Event   care.Event
	PetName string
}

type UserSummary struct {
	Pets      []pets.Pet
	TotalPets int
	TotalCare int
	Recent    []RecentCare
}

type PetSummary struct {
	Pet    pets.Pet
	Events []care.Event
	Total  int
	// Upcoming son los cuidados con fecha de hoy en adelante.
	Upcoming []care.Event
}
