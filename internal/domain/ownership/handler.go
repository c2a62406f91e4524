package ownership

import (
	"net/http"

	"pawly/internal/platform/apperror"
)

// DeniedRedirectPath es la lista de mascotas del propio usuario.
const DeniedRedirectPath = "/pets"

var errAccessDenied = apperror.Forbidden("access denied")

// WriteDenied traduce una decisión distinta de Allow a la respuesta HTTP.
// Devuelve true si ya respondió (el handler debe cortar).
func WriteDenied(w http.ResponseWriter, r *http.Request, d Decision, err error) bool {
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return true
	}

	switch d {
	case Allow:
		return false
	case DenyRedirect:
		http.Redirect(w, r, DeniedRedirectPath, http.StatusFound)
	case DenyForbidden:
		http.Error(w, errAccessDenied.Message, http.StatusForbidden)
	default:
		http.NotFound(w, r)
	}
	return true
}
