package pets

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawly/internal/domain/attachments"
	"pawly/internal/domain/ownership"
	"pawly/internal/middleware"
	"pawly/internal/platform/apperror"
	"pawly/internal/platform/logger"
	"pawly/internal/platform/render"
)

// maxFormMemory: lo que excede va a archivos temporales.
const maxFormMemory = 8 << 20

type PetGuard interface {
	CheckPet(ctx context.Context, requesterID, petID string, mode ownership.Decision) (ownership.Decision, error)
}

func RegisterRoutes(r chi.Router, svc *Service, guard PetGuard, view *render.Renderer, log logger.Logger) {
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)

		pr.Get("/pets", listPetsHandler(svc, view, log))
		pr.Get("/pets/create", createPetPageHandler(view))
		pr.Post("/pets/create", createPetHandler(svc, view, log))

		// Solo el dueño; el resto vuelve a /pets
		pr.Get("/pets/{id}/edit", editPetPageHandler(svc, guard, view, log))
		pr.Post("/pets/{id}/edit", editPetHandler(svc, guard, view, log))
		pr.Post("/pets/{id}/delete", deletePetHandler(svc, guard, log))
	})
}

// listPetsHandler godoc
// @Summary  List my pets
// @Tags     pets
// @Produce  html
// @Success  200
// @Success  302  "Redirect to /login when anonymous"
// @Router   /pets [get]
func listPetsHandler(svc *Service, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		items, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			log.Error("list pets", map[string]any{"user_id": userID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		view.HTML(w, r, http.StatusOK, "pets", render.View{Title: "Meus pets", Data: items})
	}
}

func createPetPageHandler(view *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.HTML(w, r, http.StatusOK, "pet_create", render.View{Title: "Novo pet"})
	}
}

// createPetHandler godoc
// @Summary      Create a pet
// @Description  Invalid idade/peso/data_nascimento are stored as null. An image upload wins over foto_url.
// @Tags         pets
// @Accept       multipart/form-data
// @Produce      html
// @Param        nome             formData  string  true   "Name"
// @Param        especie          formData  string  false  "Species"
// @Param        raca             formData  string  false  "Breed"
// @Param        idade            formData  string  false  "Age (integer)"
// @Param        peso             formData  string  false  "Weight (decimal)"
// @Param        data_nascimento  formData  string  false  "Birth date YYYY-MM-DD"
// @Param        foto_url         formData  string  false  "External photo URL"
// @Param        foto_arquivo     formData  file    false  "Photo (png, jpg, jpeg, gif)"
// @Success      302  "Redirect to /pets"
// @Failure      422  "Form with error message"
// @Router       /pets/create [post]
func createPetHandler(svc *Service, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		in, closeFile, err := parsePetForm(r)
		if err != nil {
			writeFormError(w, err)
			return
		}
		defer closeFile()

		p, err := svc.Create(r.Context(), userID, in)
		if err != nil {
			if errors.Is(err, apperror.ErrValidation) {
				view.HTML(w, r, http.StatusUnprocessableEntity, "pet_create", render.View{
					Title: "Novo pet",
					Error: apperror.Message(err, "invalid pet"),
					Form:  formValues(r),
				})
				return
			}
			log.Error("create pet", map[string]any{"user_id": userID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Info("pet created", map[string]any{"user_id": userID, "pet_id": p.ID})
		http.Redirect(w, r, "/pets", http.StatusFound)
	}
}

func editPetPageHandler(svc *Service, guard PetGuard, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "id")
		d, err := guard.CheckPet(r.Context(), middleware.UserID(r.Context()), petID, ownership.DenyRedirect)
		if ownership.WriteDenied(w, r, d, err) {
			return
		}

		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			notFoundOrError(w, r, log, err)
			return
		}

		view.HTML(w, r, http.StatusOK, "pet_edit", render.View{Title: "Editar " + p.Name, Data: p})
	}
}

// editPetHandler godoc
// @Summary      Edit a pet (full replace)
// @Description  Empty data_nascimento keeps the stored date; without upload or URL the photo is kept.
// @Description  Non-owners are redirected to /pets.
// @Tags         pets
// @Accept       multipart/form-data
// @Produce      html
// @Param        id               path      string  true   "Pet ID"
// @Param        nome             formData  string  true   "Name"
// @Param        especie          formData  string  false  "Species"
// @Param        raca             formData  string  false  "Breed"
// @Param        idade            formData  string  false  "Age (integer)"
// @Param        peso             formData  string  false  "Weight (decimal)"
// @Param        data_nascimento  formData  string  false  "Birth date YYYY-MM-DD"
// @Param        foto_url         formData  string  false  "External photo URL"
// @Param        foto_arquivo     formData  file    false  "Photo (png, jpg, jpeg, gif)"
// @Success      302  "Redirect to /pets"
// @Failure      404
// @Router       /pets/{id}/edit [post]
func editPetHandler(svc *Service, guard PetGuard, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		petID := chi.URLParam(r, "id")

		d, err := guard.CheckPet(r.Context(), userID, petID, ownership.DenyRedirect)
		if ownership.WriteDenied(w, r, d, err) {
			return
		}

		in, closeFile, err := parsePetForm(r)
		if err != nil {
			writeFormError(w, err)
			return
		}
		defer closeFile()

		p, err := svc.Update(r.Context(), petID, in)
		if err != nil {
			if errors.Is(err, apperror.ErrValidation) {
				current, getErr := svc.GetByID(r.Context(), petID)
				if getErr != nil {
					notFoundOrError(w, r, log, getErr)
					return
				}
				view.HTML(w, r, http.StatusUnprocessableEntity, "pet_edit", render.View{
					Title: "Editar " + current.Name,
					Error: apperror.Message(err, "invalid pet"),
					Data:  current,
				})
				return
			}
			notFoundOrError(w, r, log, err)
			return
		}

		log.Info("pet updated", map[string]any{"user_id": userID, "pet_id": p.ID})
		http.Redirect(w, r, "/pets", http.StatusFound)
	}
}

// deletePetHandler godoc
// @Summary      Delete a pet and all its care events
// @Description  Non-owners are redirected to /pets.
// @Tags         pets
// @Param        id  path  string  true  "Pet ID"
// @Success      302  "Redirect to /pets"
// @Failure      404
// @Router       /pets/{id}/delete [post]
func deletePetHandler(svc *Service, guard PetGuard, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		petID := chi.URLParam(r, "id")

		d, err := guard.CheckPet(r.Context(), userID, petID, ownership.DenyRedirect)
		if ownership.WriteDenied(w, r, d, err) {
			return
		}

		if err := svc.Delete(r.Context(), petID); err != nil {
			notFoundOrError(w, r, log, err)
			return
		}

		log.Info("pet deleted", map[string]any{"user_id": userID, "pet_id": petID})
		http.Redirect(w, r, "/pets", http.StatusFound)
	}
}

// parsePetForm acepta multipart (con foto) o urlencoded.
// closeFile siempre es no-nil.
func parsePetForm(r *http.Request) (Input, func(), error) {
	noop := func() {}

	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return Input{}, noop, err
	}

	in := Input{
		Name:      r.PostFormValue("nome"),
		Species:   r.PostFormValue("especie"),
		Breed:     r.PostFormValue("raca"),
		Age:       r.PostFormValue("idade"),
		Weight:    r.PostFormValue("peso"),
		BirthDate: r.PostFormValue("data_nascimento"),
		PhotoURL:  r.PostFormValue("foto_url"),
	}

	file, header, err := r.FormFile("foto_arquivo")
	if err != nil {
		// sin archivo (o form sin multipart): no hay upload
		return in, noop, nil
	}
	in.Photo = &attachments.Upload{Filename: header.Filename, Body: file}
	return in, func() { _ = file.Close() }, nil
}

func formValues(r *http.Request) map[string]string {
	out := map[string]string{}
	for _, k := range []string{"nome", "especie", "raca", "idade", "peso", "data_nascimento", "foto_url"} {
		out[k] = r.PostFormValue(k)
	}
	return out
}

func writeFormError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "invalid form", http.StatusBadRequest)
}

func notFoundOrError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	log.Error("pet request failed", map[string]any{"path": r.URL.Path, "error": err.Error()})
	http.Error(w, "internal error", http.StatusInternalServerError)
}
