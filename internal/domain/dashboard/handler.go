package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawly/internal/domain/ownership"
	"pawly/internal/domain/pets"
	"pawly/internal/middleware"
	"pawly/internal/platform/apperror"
	"pawly/internal/platform/logger"
	"pawly/internal/platform/render"
)

type PetReader interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type PetGuard interface {
	CheckPet(ctx context.Context, requesterID, petID string, mode ownership.Decision) (ownership.Decision, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petsSvc PetReader, guard PetGuard, view *render.Renderer, log logger.Logger) {
	r.Group(func(dr chi.Router) {
		dr.Use(middleware.RequireUser)

		dr.Get("/dashboard", userDashboardHandler(svc, view, log))
		dr.Get("/pets/{id}/dashboard", petDashboardHandler(svc, petsSvc, guard, view, log))
	})
}

// userDashboardHandler godoc
// @Summary  Totals and the 5 most recent care events across my pets
// @Tags     dashboard
// @Produce  html
// @Success  200
// @Router   /dashboard [get]
func userDashboardHandler(svc *Service, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		sum, err := svc.UserSummary(r.Context(), userID)
		if err != nil {
			log.Error("user dashboard", map[string]any{"user_id": userID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		view.HTML(w, r, http.StatusOK, "dashboard", render.View{Title: "Dashboard", Data: sum})
	}
}

// petDashboardHandler godoc
// @Summary      Care history, total and upcoming events of one pet
// @Description  Non-owners are redirected to /pets.
// @Tags         dashboard
// @Produce      html
// @Param        id  path  string  true  "Pet ID"
// @Success      200
// @Failure      404
// @Router       /pets/{id}/dashboard [get]
func petDashboardHandler(svc *Service, petsSvc PetReader, guard PetGuard, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "id")
		d, err := guard.CheckPet(r.Context(), middleware.UserID(r.Context()), petID, ownership.DenyRedirect)
		if ownership.WriteDenied(w, r, d, err) {
			return
		}

		p, err := petsSvc.GetByID(r.Context(), petID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			log.Error("load pet", map[string]any{"pet_id": petID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		sum, err := svc.PetSummary(r.Context(), p)
		if err != nil {
			log.Error("pet dashboard", map[string]any{"pet_id": petID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		view.HTML(w, r, http.StatusOK, "pet_dashboard", render.View{Title: p.Name, Data: sum})
	}
}
