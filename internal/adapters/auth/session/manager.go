// Package session emite y verifica la cookie de sesión (JWT HS256 firmado).
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const (
	defaultCookieName = "pawly_session"
	defaultTTL        = 7 * 24 * time.Hour
	issuer            = "pawly"
	minSecretLen      = 16
)

var ErrSecretTooShort = fmt.Errorf("session secret must be at least %d characters", minSecretLen)

type Options struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager implementa auth.AuthVerifier y además escribe/borra la cookie.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool

	now func() time.Time
}

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func NewManager(opts Options) (*Manager, error) {
	if len(opts.Secret) < minSecretLen {
		return nil, ErrSecretTooShort
	}
	m := &Manager{
		secret:     []byte(opts.Secret),
		cookieName: strings.TrimSpace(opts.CookieName),
		ttl:        opts.TTL,
		secure:     opts.Secure,
		now:        time.Now,
	}
	if m.cookieName == "" {
		m.cookieName = defaultCookieName
	}
	if m.ttl <= 0 {
		m.ttl = defaultTTL
	}
	return m, nil
}

func (m *Manager) CookieName() string { return m.cookieName }

// Token firma un JWT para el usuario; Issue lo usa para la cookie.
func (m *Manager) Token(userID, email string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("session subject is empty")
	}
	now := m.now()
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Issue deja al cliente en estado autenticado.
func (m *Manager) Issue(w http.ResponseWriter, userID, email string) error {
	token, err := m.Token(userID, email)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  m.now().Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear es incondicional: vale también sin sesión previa.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
