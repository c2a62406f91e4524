package ownership

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawly/internal/platform/apperror"
)

// -------------------------
// Test lookups (in-memory)
// -------------------------

type testOwners struct {
	pets    map[string]string // petID -> ownerID
	care    map[string]string // careID -> petID
	failing error
}

func (o testOwners) OwnerOf(_ context.Context, petID string) (string, error) {
	if o.failing != nil {
		return "", o.failing
	}
	owner, ok := o.pets[petID]
	if !ok {
		return "", apperror.NotFound("pet", petID)
	}
	return owner, nil
}

func (o testOwners) OwnerOfCare(ctx context.Context, careID string) (string, error) {
	petID, ok := o.care[careID]
	if !ok {
		return "", apperror.NotFound("care event", careID)
	}
	return o.OwnerOf(ctx, petID)
}

func newTestGuard() *Guard {
	o := testOwners{
		pets: map[string]string{"rex": "alice", "tom": "bob"},
		care: map[string]string{"vacina": "rex"},
	}
	return NewGuard(o, o)
}

func TestCheckPet(t *testing.T) {
	g := newTestGuard()
	ctx := context.Background()

	tests := []struct {
		name      string
		requester string
		petID     string
		mode      Decision
		want      Decision
	}{
		{"owner allowed", "alice", "rex", DenyRedirect, Allow},
		{"other user redirected", "bob", "rex", DenyRedirect, DenyRedirect},
		{"other user forbidden", "bob", "rex", DenyForbidden, DenyForbidden},
		{"missing pet is not found before ownership", "bob", "ghost", DenyRedirect, NotFound},
		{"anonymous denied", "", "rex", DenyRedirect, DenyRedirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.CheckPet(ctx, tt.requester, tt.petID, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckCare_ResolvesThroughPet(t *testing.T) {
	g := newTestGuard()
	ctx := context.Background()

	got, err := g.CheckCare(ctx, "alice", "vacina", DenyForbidden)
	require.NoError(t, err)
	assert.Equal(t, Allow, got)

	got, err = g.CheckCare(ctx, "bob", "vacina", DenyForbidden)
	require.NoError(t, err)
	assert.Equal(t, DenyForbidden, got)

	got, err = g.CheckCare(ctx, "bob", "nope", DenyForbidden)
	require.NoError(t, err)
	assert.Equal(t, NotFound, got)
}

func TestCheck_InvalidMode(t *testing.T) {
	g := newTestGuard()

	_, err := g.CheckPet(context.Background(), "alice", "rex", Allow)
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = g.CheckCare(context.Background(), "alice", "vacina", NotFound)
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestCheck_LookupFailure(t *testing.T) {
	o := testOwners{failing: errors.New("db down")}
	g := NewGuard(o, o)

	_, err := g.CheckPet(context.Background(), "alice", "rex", DenyRedirect)
	require.Error(t, err)
}

func TestWriteDenied(t *testing.T) {
	tests := []struct {
		decision Decision
		err      error
		handled  bool
		status   int
		location string
		body     string
	}{
		{decision: Allow, handled: false, status: http.StatusOK},
		{decision: DenyRedirect, handled: true, status: http.StatusFound, location: "/pets"},
		{decision: DenyForbidden, handled: true, status: http.StatusForbidden, body: "access denied\n"},
		{decision: NotFound, handled: true, status: http.StatusNotFound},
		{decision: NotFound, err: errors.New("boom"), handled: true, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.decision.String(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/care/x/delete", nil)

			assert.Equal(t, tt.handled, WriteDenied(rec, req, tt.decision, tt.err))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
				assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			}
		})
	}
}
