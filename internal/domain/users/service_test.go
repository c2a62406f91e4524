package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pawly/internal/adapters/auth/password"
	"pawly/internal/platform/apperror"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu      sync.Mutex
	byID    map[string]User
	failGet error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return apperror.Conflict("user", u.Email)
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, apperror.NotFound("user", id)
	}
	return u, nil
}

func (r *testRepo) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return User{}, r.failGet
	}
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, apperror.NotFound("user", email)
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, password.NewHasherWithCost(bcrypt.MinCost))
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestRegister_OK(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: " Ana ", Email: "a@x.com", Password: "pw", Confirm: "pw",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ana", u.Name)
	assert.NotEqual(t, "pw", u.PasswordHash)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), u.CreatedAt)

	stored, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, stored)
}

func TestRegister_PasswordsDiffer(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@x.com", Password: "pw", Confirm: "other",
	})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, MsgPasswordsDiffer, err.Error())
	assert.Empty(t, repo.byID)
}

func TestRegister_DuplicateEmailRegardlessOfPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Confirm: "pw"})
	require.NoError(t, err)

	for _, pw := range []string{"pw", "different"} {
		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: pw, Confirm: pw})
		require.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, MsgEmailTaken, err.Error())
	}
}

func TestRegister_ConflictOnCreateIsEmailTaken(t *testing.T) {
	svc, repo := newTestService()
	repo.byID["x"] = User{ID: "x", Email: "a@x.com"}
	// GetByEmail "no lo ve" (carrera simulada) y el índice único rechaza
	repo.failGet = apperror.NotFound("user", "a@x.com")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "pw", Confirm: "pw"})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, MsgEmailTaken, err.Error())
}

func TestRegister_RepoFailureIsNotValidation(t *testing.T) {
	svc, repo := newTestService()
	repo.failGet = errors.New("db down")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "pw", Confirm: "pw"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrValidation)
}

func TestAuthenticate_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Confirm: "pw"})
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, errWrongPw := svc.Authenticate(ctx, "a@x.com", "nope")
	_, errUnknown := svc.Authenticate(ctx, "ghost@x.com", "pw")

	require.ErrorIs(t, errWrongPw, apperror.ErrUnauthenticated)
	require.ErrorIs(t, errUnknown, apperror.ErrUnauthenticated)
	assert.Equal(t, errWrongPw.Error(), errUnknown.Error())
	assert.Equal(t, MsgInvalidCredentials, errUnknown.Error())
}

func TestGetByID_Empty(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
