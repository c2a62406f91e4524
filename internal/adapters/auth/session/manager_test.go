package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawly/internal/ports/auth"
)

const testSecret = "test-secret-at-least-16-chars!!"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Options{Secret: testSecret, TTL: time.Hour})
	require.NoError(t, err)
	return m
}

func TestNewManager_ShortSecret(t *testing.T) {
	_, err := NewManager(Options{Secret: "short"})
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestIssueThenVerify(t *testing.T) {
	m := newTestManager(t)
	rec := httptest.NewRecorder()

	require.NoError(t, m.Issue(rec, "user-1", "ana@example.com"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, defaultCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)

	claims, err := m.Verify(context.Background(), c.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.NotEmpty(t, claims.SessionID)
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.Token("user-1", "")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := newTestManager(t).Token("user-1", "")
	require.NoError(t, err)

	other, err := NewManager(Options{Secret: "another-secret-of-16-chars"})
	require.NoError(t, err)

	_, err = other.Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestVerify_Garbage(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Verify(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	_, err = m.Verify(context.Background(), "a.b.c")
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestClear(t *testing.T) {
	m := newTestManager(t)
	rec := httptest.NewRecorder()

	m.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
