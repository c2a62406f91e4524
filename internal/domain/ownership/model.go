package ownership

// Decision es el resultado de un chequeo de pertenencia.
type Decision int

const (
	Allow Decision = iota
	// DenyRedirect: el handler redirige a /pets sin explicar.
	DenyRedirect
	// DenyForbidden: el handler responde 403 en texto plano.
	DenyForbidden
	// NotFound: el id no existe; se decide antes de comparar dueños.
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyRedirect:
		return "deny_redirect"
	case DenyForbidden:
		return "deny_forbidden"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
