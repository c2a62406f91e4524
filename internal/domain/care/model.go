package care

import (
	"sort"
	"time"
)

// Event es un cuidado registrado (vacina, consulta, banho...). No se edita.
type Event struct {
	ID          string
	PetID       string
	Type        string
	Description string
	// Date es nil cuando el formulario llegó sin fecha válida.
	Date      *time.Time
	Notes     string
	Cost      *float64
	CreatedAt time.Time
}

// NewestFirst: fecha descendente, sin fecha al final, empates por orden de alta.
// Los ids son UUIDv7, así que ordenar por id respeta el orden de inserción.
func NewestFirst(a, b Event) bool {
	switch {
	case a.Date == nil && b.Date == nil:
		return a.ID < b.ID
	case a.Date == nil:
		return false
	case b.Date == nil:
		return true
	case !a.Date.Equal(*b.Date):
		return a.Date.After(*b.Date)
	default:
		return a.ID < b.ID
	}
}

func SortNewestFirst(events []Event) {
	sort.SliceStable(events, func(i, j int) bool { return NewestFirst(events[i], events[j]) })
}
