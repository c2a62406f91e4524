package pets

import "time"

// Pet es la ficha de una mascota. OwnerUserID no cambia nunca.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string
	Breed   string

	Age       *int
	Weight    *float64
	BirthDate *time.Time

	// Photo es "uploads/<archivo>" o una URL externa.
	Photo *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
