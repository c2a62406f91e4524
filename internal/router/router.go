package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pawly/docs"
	"pawly/internal/adapters/auth/password"
	mem "pawly/internal/adapters/storage/memory"
	"pawly/internal/domain/attachments"
	"pawly/internal/domain/care"
	"pawly/internal/domain/dashboard"
	"pawly/internal/domain/ownership"
	"pawly/internal/domain/pets"
	"pawly/internal/domain/users"
	"pawly/internal/middleware"
	"pawly/internal/platform/logger"
	"pawly/internal/platform/render"
	"pawly/internal/ports/auth"
)

// Store agrupa los repositorios; lo implementan memory.Store y sqlstore.Store.
type Store interface {
	Users() users.Repository
	Pets() pets.Repository
	Care() care.Repository
}

// SessionManager emite y verifica la cookie de sesión (session.Manager).
type SessionManager interface {
	auth.AuthVerifier
	users.Sessions
	CookieName() string
}

type Options struct {
	Sessions SessionManager
	Blobs    attachments.Store

	// Opcionales: sin Store usa memoria, sin Hasher bcrypt por defecto.
	Store  Store
	Hasher users.PasswordHasher
	Logger logger.Logger

	// MaxUploadBytes limita el cuerpo de cada request (0 = sin límite).
	MaxUploadBytes int64
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Sessions == nil {
		return nil, errors.New("router: sessions required")
	}
	if opts.Blobs == nil {
		return nil, errors.New("router: blob store required")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = mem.NewStore()
	}
	hasher := opts.Hasher
	if hasher == nil {
		hasher = password.NewHasher()
	}

	view, err := render.New(log)
	if err != nil {
		return nil, err
	}

	// Services por módulo
	usersSvc := users.NewService(store.Users(), hasher)
	petsSvc := pets.NewService(store.Pets(), attachments.NewResolver(opts.Blobs))
	careSvc := care.NewService(store.Care())
	guard := ownership.NewGuard(petsSvc, careSvc)
	dashSvc := dashboard.NewService(petsSvc, careSvc)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.BodyLimit(opts.MaxUploadBytes))

	r.Use(middleware.AuthContext(opts.Sessions, opts.Sessions.CookieName(), func(ctx context.Context, userID string) error {
		_, err := usersSvc.GetByID(ctx, userID)
		return err
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		view.HTML(w, r, http.StatusOK, "index", render.View{Title: "Pawly"})
	})

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, opts.Sessions, view, log)
	pets.RegisterRoutes(r, petsSvc, guard, view, log)
	care.RegisterRoutes(r, careSvc, petsSvc, guard, view, log)
	dashboard.RegisterRoutes(r, dashSvc, petsSvc, guard, view, log)
	attachments.RegisterRoutes(r, opts.Blobs, log)

	return r, nil
}
