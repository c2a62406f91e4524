package attachments

import (
	"context"
	"fmt"
	"io"
)

// Upload es un archivo recibido en el formulario (foto_arquivo).
type Upload struct {
	Filename string
	Body     io.Reader
}

// Store persiste los binarios; un Save con nombre repetido sobrescribe.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve decide la referencia de la foto, en este orden:
//  1. upload con extensión permitida: se guarda y devuelve "uploads/<nombre>"
//  2. URL no vacía, tal cual
//  3. previous (nil al crear)
//
// Dos usuarios que suben el mismo nombre comparten archivo: el último gana.
func (r *Resolver) Resolve(ctx context.Context, up *Upload, urlText string, previous *string) (*string, error) {
	if up != nil && up.Body != nil && up.Filename != "" && AllowedFile(up.Filename) {
		if name := SecureFilename(up.Filename); name != "" {
			if err := r.store.Save(ctx, name, up.Body); err != nil {
				return nil, fmt.Errorf("save upload %s: %w", name, err)
			}
			ref := Reference(name)
			return &ref, nil
		}
	}

	if urlText != "" {
		ref := urlText
		return &ref, nil
	}

	return previous, nil
}
