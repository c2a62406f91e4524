package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawly/internal/domain/care"
	"pawly/internal/domain/pets"
)

type fakePets struct {
	byOwner map[string][]pets.Pet
	err     error
}

func (f fakePets) ListByOwner(_ context.Context, ownerUserID string) ([]pets.Pet, error) {
	return f.byOwner[ownerUserID], f.err
}

type fakeCare struct {
	byPet  map[string][]care.Event
	count  int
	recent []care.Event
	limit  int
}

func (f *fakeCare) ListByPet(_ context.Context, petID string) ([]care.Event, error) {
	return f.byPet[petID], nil
}

func (f *fakeCare) CountByOwner(context.Context, string) (int, error) { return f.count, nil }

func (f *fakeCare) RecentByOwner(_ context.Context, _ string, limit int) ([]care.Event, error) {
	f.limit = limit
	return f.recent, nil
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPetSummary_UpcomingAgainstInjectedNow(t *testing.T) {
	rex := pets.Pet{ID: "rex", Name: "Rex"}
	fc := &fakeCare{byPet: map[string][]care.Event{
		"rex": {
			{ID: "2", PetID: "rex", Date: day(2024, 6, 1)},
			{ID: "1", PetID: "rex", Date: day(2024, 1, 1)},
		},
	}}
	svc := NewService(fakePets{}, fc)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC) }

	sum, err := svc.PetSummary(context.Background(), rex)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Total)
	require.Len(t, sum.Upcoming, 1)
	assert.Equal(t, day(2024, 6, 1), sum.Upcoming[0].Date)
}

func TestPetSummary_TodayCountsUndatedDoesNot(t *testing.T) {
	fc := &fakeCare{byPet: map[string][]care.Event{
		"rex": {
			{ID: "1", Date: day(2024, 3, 1)},
			{ID: "2", Date: day(2024, 2, 29)},
			{ID: "3"},
		},
	}}
	svc := NewService(fakePets{}, fc)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC) }

	sum, err := svc.PetSummary(context.Background(), pets.Pet{ID: "rex"})
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Total)
	require.Len(t, sum.Upcoming, 1)
	assert.Equal(t, "1", sum.Upcoming[0].ID)
}

func TestUserSummary(t *testing.T) {
	fp := fakePets{byOwner: map[string][]pets.Pet{
		"alice": {{ID: "rex", Name: "Rex"}, {ID: "mia", Name: "Mia"}},
	}}
	fc := &fakeCare{
		count: 7,
		recent: []care.Event{
			{ID: "b", PetID: "mia", Date: day(2024, 5, 1)},
			{ID: "a", PetID: "rex", Date: day(2024, 4, 1)},
		},
	}
	svc := NewService(fp, fc)

	sum, err := svc.UserSummary(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalPets)
	assert.Equal(t, 7, sum.TotalCare)
	assert.Equal(t, RecentLimit, fc.limit)
	require.Len(t, sum.Recent, 2)
	assert.Equal(t, "Mia", sum.Recent[0].PetName)
	assert.Equal(t, "Rex", sum.Recent[1].PetName)
}

func TestUserSummary_Error(t *testing.T) {
	svc := NewService(fakePets{err: errors.New("db down")}, &fakeCare{})

	_, err := svc.UserSummary(context.Background(), "alice")
	require.Error(t, err)
}
