package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pawly/internal/platform/apperror"
	"pawly/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// UserLookup confirma que el usuario del token sigue existiendo.
// Devuelve apperror.ErrNotFound si ya no está.
type UserLookup func(ctx context.Context, userID string) error

// AuthContext:
// - Lee la cookie de sesión y, si verifica, setea claims en el contexto.
// - Si no hay cookie, es inválida o su usuario ya no existe, el request sigue anónimo; RequireUser decide.
// - Con lookup nil solo se verifica el token.
func AuthContext(verifier auth.AuthVerifier, cookieName string, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			c, err := r.Cookie(cookieName)
			if err != nil || strings.TrimSpace(c.Value) == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), c.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if lookup != nil {
				if err := lookup(r.Context(), claims.UserID); err != nil {
					if errors.Is(err, apperror.ErrNotFound) {
						next.ServeHTTP(w, r)
						return
					}
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireUser redirige a /login a los anónimos.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// UserID devuelve "" si el request es anónimo.
func UserID(ctx context.Context) string {
	c, ok := GetClaims(ctx)
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.UserID)
}
