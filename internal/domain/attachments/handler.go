package attachments

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"pawly/internal/platform/apperror"
	"pawly/internal/platform/logger"
)

// RegisterRoutes sirve las fotos subidas desde el Store configurado.
func RegisterRoutes(r chi.Router, store Store, log logger.Logger) {
	r.Get("/static/"+uploadsPrefix+"/{name}", serveUploadHandler(store, log))
}

// serveUploadHandler godoc
// @Summary  Uploaded pet photo
// @Tags     attachments
// @Produce  png,jpeg,gif
// @Param    name  path  string  true  "Sanitized file name"
// @Success  200
// @Failure  404
// @Router   /static/uploads/{name} [get]
func serveUploadHandler(store Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name != SecureFilename(name) || !AllowedFile(name) {
			http.NotFound(w, r)
			return
		}

		rc, err := store.Open(r.Context(), name)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			log.Error("open upload", map[string]any{"name": name, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer rc.Close()

		if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		_, _ = io.Copy(w, rc)
	}
}
