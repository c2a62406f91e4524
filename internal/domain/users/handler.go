package users

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawly/internal/middleware"
	"pawly/internal/platform/apperror"
	"pawly/internal/platform/logger"
	"pawly/internal/platform/render"
)

// Sessions emite y borra la sesión del navegador.
type Sessions interface {
	Issue(w http.ResponseWriter, userID, email string) error
	Clear(w http.ResponseWriter)
}

func RegisterRoutes(r chi.Router, svc *Service, sessions Sessions, view *render.Renderer, log logger.Logger) {
	r.Get("/register", registerPageHandler(view))
	r.Post("/register", registerHandler(svc, sessions, view, log))
	r.Get("/login", loginPageHandler(view))
	r.Post("/login", loginHandler(svc, sessions, view, log))

	r.With(middleware.RequireUser).Get("/logout", logoutHandler(sessions))
}

func registerPageHandler(view *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.HTML(w, r, http.StatusOK, "register", render.View{Title: "Criar conta"})
	}
}

// registerHandler godoc
// @Summary      Register a user
// @Description  Creates the account and starts a session. Errors re-render the form.
// @Tags         users
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        nome      formData  string  true  "Display name"
// @Param        email     formData  string  true  "Email (unique)"
// @Param        senha     formData  string  true  "Password"
// @Param        confirma  formData  string  true  "Password confirmation"
// @Success      302  "Redirect to /pets"
// @Failure      422  "Form with error message"
// @Router       /register [post]
func registerHandler(svc *Service, sessions Sessions, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := map[string]string{
			"nome":  r.PostFormValue("nome"),
			"email": r.PostFormValue("email"),
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:     r.PostFormValue("nome"),
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("senha"),
			Confirm:  r.PostFormValue("confirma"),
		})
		if err != nil {
			if !errors.Is(err, apperror.ErrValidation) {
				log.Error("register failed", map[string]any{"error": err.Error()})
			}
			view.HTML(w, r, statusFor(err), "register", render.View{
				Title: "Criar conta",
				Error: apperror.Message(err, "could not register"),
				Form:  form,
			})
			return
		}

		if err := sessions.Issue(w, u.ID, u.Email); err != nil {
			log.Error("issue session", map[string]any{"user_id": u.ID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Info("user registered", map[string]any{"user_id": u.ID})
		http.Redirect(w, r, "/pets", http.StatusFound)
	}
}

func loginPageHandler(view *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.HTML(w, r, http.StatusOK, "login", render.View{Title: "Entrar"})
	}
}

// loginHandler godoc
// @Summary      Log in
// @Description  Unknown email and wrong password produce the same message.
// @Tags         users
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email  formData  string  true  "Email"
// @Param        senha  formData  string  true  "Password"
// @Success      302  "Redirect to /pets"
// @Failure      401  "Form with error message"
// @Router       /login [post]
func loginHandler(svc *Service, sessions Sessions, view *render.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		u, err := svc.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("senha"))
		if err != nil {
			if !errors.Is(err, apperror.ErrUnauthenticated) {
				log.Error("login failed", map[string]any{"error": err.Error()})
			}
			view.HTML(w, r, statusFor(err), "login", render.View{
				Title: "Entrar",
				Error: apperror.Message(err, MsgInvalidCredentials),
				Form:  map[string]string{"email": r.PostFormValue("email")},
			})
			return
		}

		if err := sessions.Issue(w, u.ID, u.Email); err != nil {
			log.Error("issue session", map[string]any{"user_id": u.ID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/pets", http.StatusFound)
	}
}

// logoutHandler godoc
// @Summary  Log out
// @Tags     users
// @Success  302  "Redirect to /login"
// @Router   /logout [get]
func logoutHandler(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
