package care

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

type Guard interface {
	CheckPet(ctx context.Context, requesterID, petID string, mode ownership.Decision) (ownership.Decision, error)
	CheckCare(ctx context.Context, requesterID, careID string, mode ownership.Decision) (ownership.Decision, error)
}

type carePage struct {
	Pet    pets.Pet
	Events []Event
}

func RegisterRoutes(r chi.Router, svc *Service, petsSvc PetReader, guard Guard, view *render.Renderer, log logger.Logger) {
	r.Group(func(cr chi.Router) {
		cr.Use(middleware.RequireUser)

		cr.Get("/pets/{id}/care", listCareHandler(svc, petsSvc, guard, view, log))
		cr.Post("/pets/{id}/care", createCareHandler(svc, petsSvc, guard, view, log))

		// Único call site con 403 explícito en vez de redirect
		cr.Post("/care/{id}/delete", deleteCareHandler(svc, guard, log))
	})
}

// listCareHandler godoc
// @Summary      List a pet's care events
// @Description  Newest date first, undated events last. Non-owners are redirected to /pets.
// @Tags         care
// @Produce      html
// @Param        id  path  string  true  "Pet ID"
// @Success      200
// @Failure      404
// @Router       /pets/{id}/care [get]
func listCareHandler(svc *Service, petsSvc PetReader, guard Guard, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "id")
		d, err := guard.CheckPet(r.Context(), middleware.UserID(r.Context()), petID, ownership.DenyRedirect)
		if ownership.WriteDenied(w, r, d, err) {
			return
		}

		renderCarePage(w, r, svc, petsSvc, view, log, petID, http.StatusOK, "")
	}
}

// createCareHandler godoc
// @Summary      Add a care event
// @Description  Invalid data/custo are stored as null. Non-owners are redirected to /pets.
// @Tags         care
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id           path      string  true   "Pet ID"
// @Param        tipo         formData  string  true   "Type (vacina, consulta, banho...)"
// @Param        descricao    formData  string  false  "Description"
// @Param        data         formData  string  false  "Date YYYY-MM-DD"
// @Param        observacoes  formData  string  false  "Notes"
// @Param        custo        formData  string  false  "Cost (decimal)"
// @Success      302  "Redirect to /pets/{id}/care"
// @Failure      422  "Page with error message"
// @Router       /pets/{id}/care [post]
func createCareHandler(svc *Service, petsSvc PetReader, guard Guard, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		petID := chi.URLParam(r, "id")

		d, err := guard.CheckPet(r.Context(), userID, petID, ownership.DenyRedirect)
		if ownership.WriteDenied(w, r, d, err) {
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), petID, Input{
			Type:        r.PostFormValue("tipo"),
			Description: r.PostFormValue("descricao"),
			Date:        r.PostFormValue("data"),
			Notes:       r.PostFormValue("observacoes"),
			Cost:        r.PostFormValue("custo"),
		})
		if err != nil {
			if errors.Is(err, apperror.ErrValidation) {
				renderCarePage(w, r, svc, petsSvc, view, log, petID, http.StatusUnprocessableEntity, apperror.Message(err, "invalid care event"))
				return
			}
			log.Error("create care event", map[string]any{"pet_id": petID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Info("care event created", map[string]any{"user_id": userID, "pet_id": petID, "care_id": e.ID})
		http.Redirect(w, r, "/pets/"+petID+"/care", http.StatusFound)
	}
}

// deleteCareHandler godoc
// @Summary      Delete a care event
// @Description  Non-owners get 403 text/plain, no redirect.
// @Tags         care
// @Param        id  path  string  true  "Care event ID"
// @Success      302  "Redirect to /pets/{petID}/care"
// @Failure      403  "access denied"
// @Failure      404
// @Router       /care/{id}/delete [post]
func deleteCareHandler(svc *Service, guard Guard, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		careID := chi.URLParam(r, "id")

		d, err := guard.CheckCare(r.Context(), userID, careID, ownership.DenyForbidden)
		if ownership.WriteDenied(w, r, d, err) {
			return
		}

		e, err := svc.GetByID(r.Context(), careID)
		if err == nil {
			err = svc.Delete(r.Context(), careID)
		}
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			log.Error("delete care event", map[string]any{"care_id": careID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Info("care event deleted", map[string]any{"user_id": userID, "care_id": careID})
		http.Redirect(w, r, "/pets/"+e.PetID+"/care", http.StatusFound)
	}
}

func renderCarePage(w http.ResponseWriter, r *http.Request, svc *Service, petsSvc PetReader, view *render.Renderer, log logger.Logger, petID string, status int, msg string) {
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

	events, err := svc.ListByPet(r.Context(), petID)
	if err != nil {
		log.Error("list care events", map[string]any{"pet_id": petID, "error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view.HTML(w, r, status, "pet_care", render.View{
		Title: "Cuidados de " + p.Name,
		Error: msg,
		Data:  carePage{Pet: p, Events: events},
	})
}
