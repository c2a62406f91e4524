package care

import "context"

type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	Delete(ctx context.Context, id string) error

	// Listados ordenados con NewestFirst.
	ListByPet(ctx context.Context, petID string) ([]Event, error)
	RecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]Event, error)

	CountByOwner(ctx context.Context, ownerUserID string) (int, error)
	// OwnerOf resuelve el dueño vía la mascota en una sola consulta.
	OwnerOf(ctx context.Context, careID string) (string, error)
}
