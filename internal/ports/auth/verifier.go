package auth

import (
	"context"
	"errors"
)

// ErrInvalidSession se devuelve ante tokens ausentes, vencidos o alterados.
var ErrInvalidSession = errors.New("invalid session")

// AuthVerifier verifica un token de sesión y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
