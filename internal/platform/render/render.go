// Package render ejecuta las páginas HTML embebidas (layout + página).
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"pawly/internal/middleware"
	"pawly/internal/platform/logger"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// View es lo que recibe cada página. Data depende de la página.
type View struct {
	Title string
	// User es el email de la sesión; vacío si es anónimo (lo completa HTML).
	User  string
	Error string
	Form  map[string]string
	Data  any
}

type Renderer struct {
	pages map[string]*template.Template
	log   logger.Logger
}

func New(log logger.Logger) (*Renderer, error) {
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: glob templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutFile {
			continue
		}
		t, err := template.New(path.Base(layoutFile)).Funcs(Funcs()).ParseFS(files, layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(path.Base(name), ".html")] = t
	}

	return &Renderer{pages: pages, log: log}, nil
}

// HTML renderiza en un buffer primero para no mandar respuestas a medias.
func (rd *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, page string, v View) {
	t, ok := rd.pages[page]
	if !ok {
		rd.log.Error("unknown page", map[string]any{"page": page})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if c, ok := middleware.GetClaims(r.Context()); ok {
		v.User = c.Email
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		rd.log.Error("render page", map[string]any{"page": page, "error": err.Error()})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":     FormatDate,
		"photoURL": PhotoURL,
		"int":      formatInt,
		"float":    formatFloat,
		"money":    formatMoney,
	}
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// PhotoURL: las URLs externas van tal cual; el resto vive bajo /static/.
func PhotoURL(ref *string) string {
	if ref == nil || *ref == "" {
		return ""
	}
	s := *ref
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "//") {
		return s
	}
	return "/static/" + strings.TrimPrefix(s, "/")
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatMoney(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}
