package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/render"
	"github.com/GregMSThompson/bank-portal/internal/response"
	"github.com/GregMSThompson/bank-portal/internal/services"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

type authHandlers struct {
	deps *Deps
}

func NewAuthHandlers(deps *Deps) *authHandlers {
	return &authHandlers{deps: deps}
}

func (h *authHandlers) AuthRoutes(r chi.Router) {
	r.Get("/", h.Landing)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/home", h.EmployeeHome)
}

func (h *authHandlers) Landing(w http.ResponseWriter, r *http.Request) {
	h.deps.ResponseHandler.WritePage(w, r, response.Page{Title: "Welcome", Name: "landing"})
}

func (h *authHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.writeLogin(w, r, formsubmit.State{Draft: formsubmit.Draft{"userType": "customer"}})
}

// Login checks the credentials and, on success, starts a session and
// sends the user to their home page.
func (h *authHandlers) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewValidationError("form", "invalid form body"))
		return
	}

	var started session.Identity
	form := h.deps.AuthSvc.LoginForm(func(ctx context.Context, id session.Identity) error {
		var err error
		started, err = h.deps.Sessions.Login(ctx, w, r, id)
		return err
	})
	defer form.Close()

	st, err := form.Submit(r.Context(), formsubmit.DraftFromForm(r.PostForm, services.LoginSchema))
	if err != nil {
		log.Info("login rejected", "error", err)
		if st.Draft != nil {
			st.Draft["password"] = ""
		}
		h.writeLogin(w, r, st)
		return
	}

	h.deps.ResponseHandler.Redirect(w, r, services.HomeFor(started.Role))
}

func (h *authHandlers) writeLogin(w http.ResponseWriter, r *http.Request, st formsubmit.State) {
	h.deps.ResponseHandler.WritePage(w, r, response.Page{
		Title: "Sign in",
		Name:  "login",
		Data:  render.LoginPage{Form: st},
	})
}

func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Sessions.Logout(r.Context(), w, r); err != nil {
		logger.FromContext(r.Context()).Warn("failed to remove session", "error", err)
	}
	h.deps.ResponseHandler.Redirect(w, r, "/login")
}

func (h *authHandlers) EmployeeHome(w http.ResponseWriter, r *http.Request) {
	id, _ := session.FromContext(r.Context())
	h.deps.ResponseHandler.WritePage(w, r, response.Page{
		Title: "Staff dashboard",
		Name:  "employee-home",
		Data:  render.HomePage{Identity: id},
	})
}
