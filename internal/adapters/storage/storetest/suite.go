// Package storetest tiene la batería común de pruebas de repositorios.
// La corren memory y sqlstore (SQLite y, opcional, Postgres).
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawly/internal/domain/care"
	"pawly/internal/domain/pets"
	"pawly/internal/domain/users"
	"pawly/internal/platform/apperror"
)

type Repos struct {
	Users users.Repository
	Pets  pets.Repository
	Care  care.Repository
}

// Run ejecuta la batería; newRepos debe devolver un almacenamiento vacío.
func Run(t *testing.T, newRepos func(t *testing.T) Repos) {
	t.Run("users", func(t *testing.T) { testUsers(t, newRepos(t)) })
	t.Run("pets", func(t *testing.T) { testPets(t, newRepos(t)) })
	t.Run("care ordering", func(t *testing.T) { testCareOrdering(t, newRepos(t)) })
	t.Run("owner aggregates", func(t *testing.T) { testOwnerAggregates(t, newRepos(t)) })
	t.Run("cascade delete", func(t *testing.T) { testCascade(t, newRepos(t)) })
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newID() string { return uuid.Must(uuid.NewV7()).String() }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func ptr[T any](v T) *T { return &v }

func seedUser(t *testing.T, r Repos, email string) users.User {
	t.Helper()
	u := users.User{ID: newID(), Name: "Ana", Email: email, PasswordHash: "hash", CreatedAt: base}
	require.NoError(t, r.Users.Create(context.Background(), u))
	return u
}

func seedPet(t *testing.T, r Repos, owner, name string) pets.Pet {
	t.Helper()
	p := pets.Pet{ID: newID(), OwnerUserID: owner, Name: name, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, r.Pets.Create(context.Background(), p))
	return p
}

func seedCare(t *testing.T, r Repos, petID, typ string, date *time.Time) care.Event {
	t.Helper()
	e := care.Event{ID: newID(), PetID: petID, Type: typ, Date: date, CreatedAt: base}
	require.NoError(t, r.Care.Create(context.Background(), e))
	return e
}

func ids(events []care.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func testUsers(t *testing.T, r Repos) {
	ctx := context.Background()
	u := seedUser(t, r, "a@x.com")

	got, err := r.Users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, base.Equal(got.CreatedAt))

	got, err = r.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	dup := users.User{ID: newID(), Email: "a@x.com", PasswordHash: "other", CreatedAt: base}
	err = r.Users.Create(ctx, dup)
	require.ErrorIs(t, err, apperror.ErrConflict)

	_, err = r.Users.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = r.Users.GetByID(ctx, newID())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func testPets(t *testing.T, r Repos) {
	ctx := context.Background()
	a := seedUser(t, r, "a@x.com")
	b := seedUser(t, r, "b@x.com")

	full := pets.Pet{
		ID:          newID(),
		OwnerUserID: a.ID,
		Name:        "Rex",
		Species:     "cão",
		Breed:       "vira-lata",
		Age:         ptr(3),
		Weight:      ptr(12.5),
		BirthDate:   day(2021, 5, 4),
		Photo:       ptr("uploads/rex.png"),
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	require.NoError(t, r.Pets.Create(ctx, full))
	bare := seedPet(t, r, a.ID, "Mia")
	seedPet(t, r, b.ID, "Bob")

	got, err := r.Pets.GetByID(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.OwnerUserID)
	assert.Equal(t, "cão", got.Species)
	require.NotNil(t, got.Age)
	assert.Equal(t, 3, *got.Age)
	require.NotNil(t, got.Weight)
	assert.InDelta(t, 12.5, *got.Weight, 0.0001)
	require.NotNil(t, got.BirthDate)
	assert.True(t, day(2021, 5, 4).Equal(*got.BirthDate))
	require.NotNil(t, got.Photo)
	assert.Equal(t, "uploads/rex.png", *got.Photo)

	got, err = r.Pets.GetByID(ctx, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Age)
	assert.Nil(t, got.Weight)
	assert.Nil(t, got.BirthDate)
	assert.Nil(t, got.Photo)

	list, err := r.Pets.ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rex", list[0].Name)
	assert.Equal(t, "Mia", list[1].Name)

	n, err := r.Pets.CountByOwner(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	upd := full
	upd.Name = "Rex II"
	upd.Age = nil
	upd.Photo = nil
	upd.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, r.Pets.Update(ctx, upd))

	got, err = r.Pets.GetByID(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex II", got.Name)
	assert.Nil(t, got.Age)
	assert.Nil(t, got.Photo)
	assert.Equal(t, a.ID, got.OwnerUserID)
	assert.True(t, base.Add(time.Hour).Equal(got.UpdatedAt))

	err = r.Pets.Update(ctx, pets.Pet{ID: newID(), Name: "ghost"})
	require.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = r.Pets.GetByID(ctx, newID())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func testCareOrdering(t *testing.T, r Repos) {
	ctx := context.Background()
	a := seedUser(t, r, "a@x.com")
	rex := seedPet(t, r, a.ID, "Rex")

	undated := seedCare(t, r, rex.ID, "banho", nil)
	jan := seedCare(t, r, rex.ID, "vacina", day(2024, 1, 1))
	jun1 := seedCare(t, r, rex.ID, "consulta", day(2024, 6, 1))
	jun2 := seedCare(t, r, rex.ID, "retorno", day(2024, 6, 1))

	list, err := r.Care.ListByPet(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{jun1.ID, jun2.ID, jan.ID, undated.ID}, ids(list))

	got, err := r.Care.GetByID(ctx, jan.ID)
	require.NoError(t, err)
	assert.Equal(t, "vacina", got.Type)
	require.NotNil(t, got.Date)
	assert.True(t, day(2024, 1, 1).Equal(*got.Date))

	owner, err := r.Care.OwnerOf(ctx, jun1.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, owner)

	_, err = r.Care.OwnerOf(ctx, newID())
	require.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, r.Care.Delete(ctx, jan.ID))
	_, err = r.Care.GetByID(ctx, jan.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	require.ErrorIs(t, r.Care.Delete(ctx, jan.ID), apperror.ErrNotFound)
}

func testOwnerAggregates(t *testing.T, r Repos) {
	ctx := context.Background()
	a := seedUser(t, r, "a@x.com")
	b := seedUser(t, r, "b@x.com")
	rex := seedPet(t, r, a.ID, "Rex")
	mia := seedPet(t, r, a.ID, "Mia")
	bob := seedPet(t, r, b.ID, "Bob")

	var want []string
	for i := 1; i <= 6; i++ {
		petID := rex.ID
		if i%2 == 0 {
			petID = mia.ID
		}
		e := seedCare(t, r, petID, "consulta", day(2024, time.Month(i), 10))
		want = append([]string{e.ID}, want...)
	}
	seedCare(t, r, bob.ID, "vacina", day(2025, 1, 1))

	n, err := r.Care.CountByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	recent, err := r.Care.RecentByOwner(ctx, a.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, want[:5], ids(recent))

	recent, err = r.Care.RecentByOwner(ctx, b.ID, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func testCascade(t *testing.T, r Repos) {
	ctx := context.Background()
	a := seedUser(t, r, "a@x.com")
	rex := seedPet(t, r, a.ID, "Rex")
	mia := seedPet(t, r, a.ID, "Mia")
	e1 := seedCare(t, r, rex.ID, "vacina", day(2024, 1, 1))
	seedCare(t, r, rex.ID, "consulta", nil)
	keep := seedCare(t, r, mia.ID, "banho", nil)

	require.NoError(t, r.Pets.Delete(ctx, rex.ID))

	_, err := r.Pets.GetByID(ctx, rex.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = r.Care.GetByID(ctx, e1.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	left, err := r.Care.ListByPet(ctx, rex.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	n, err := r.Care.CountByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = r.Care.GetByID(ctx, keep.ID)
	require.NoError(t, err)

	require.ErrorIs(t, r.Pets.Delete(ctx, rex.ID), apperror.ErrNotFound)
}
