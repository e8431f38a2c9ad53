package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/mount"
	"github.com/GregMSThompson/bank-portal/internal/render"
	"github.com/GregMSThompson/bank-portal/internal/response"
	"github.com/GregMSThompson/bank-portal/internal/services"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

// listState is a mounted list page: one controller and the fragment that
// renders it.
type listState interface {
	mount.Closer
	Wait(ctx context.Context) error
	Fragment(viewID string, q listview.Query) (name string, data any)
}

type listMount[T any] struct {
	ctrl  *listview.Controller[T]
	items string
}

func (l *listMount[T]) Close()                         { l.ctrl.Close() }
func (l *listMount[T]) Wait(ctx context.Context) error { return l.ctrl.Wait(ctx) }

func (l *listMount[T]) Fragment(viewID string, q listview.Query) (string, any) {
	return l.items, render.Items[T]{ViewID: viewID, Status: l.ctrl.Status(q)}
}

// mountList registers a list page, starts its one read in the background
// and renders the shell. The items arrive through /views/{id}/items.
func mountList[T any](d *Deps, w http.ResponseWriter, r *http.Request, page, title string, ctrl *listview.Controller[T]) {
	view := d.Views.Mount(r.Context(), page, &listMount[T]{ctrl: ctrl, items: page + "-items"})
	go func() {
		_ = ctrl.Mount(view.Context())
	}()

	d.ResponseHandler.WritePage(w, r, response.Page{
		Title:  title,
		Name:   page,
		ViewID: view.ID(),
		Data:   render.ListPage{ViewID: view.ID(), Query: listview.ParseQuery(r.URL.Query())},
	})
}

// lazyNavigator lets a form be built before the view that owns it exists.
// The view is always set before the form can be submitted.
func lazyNavigator(view **mount.View) formsubmit.Navigator {
	return formsubmit.NavigatorFunc(func(target string) {
		if v := *view; v != nil {
			v.Navigate(target)
		}
	})
}

// formView finds the view a form post belongs to. A missing or expired
// view, or one mounted for someone else, is replaced by a fresh mount so
// the post is not lost.
func formView[S any](d *Deps, r *http.Request, page string, mountFn func(r *http.Request) *mount.View) (*mount.View, S, error) {
	var zero S
	if id := r.PostFormValue("view"); id != "" {
		if view, err := d.Views.LookupFor(r.Context(), id); err == nil {
			if st, ok := mount.StateOf[S](view); ok && view.Page() == page {
				return view, st, nil
			}
		}
		logger.FromContext(r.Context()).Info("form view unavailable, remounting", "page", page)
	}
	view := mountFn(r)
	st, ok := mount.StateOf[S](view)
	if !ok {
		d.Views.Unmount(view.ID())
		return nil, zero, errs.NewNotFoundError("view state mismatch")
	}
	return view, st, nil
}

type viewHandlers struct {
	deps *Deps
}

func NewViewHandlers(deps *Deps) *viewHandlers {
	return &viewHandlers{deps: deps}
}

func (h *viewHandlers) ViewRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}/items", h.Items)
	r.Get("/{id}/navigation", h.Navigation)
	r.Get("/{id}/terms", h.Terms)
	r.Delete("/{id}", h.Unmount)
	return r
}

// Items re-projects a mounted list through the request's query inputs.
// It waits for the mount's read but never issues one.
func (h *viewHandlers) Items(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Views.LookupFor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	st, ok := mount.StateOf[listState](view)
	if !ok {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewNotFoundError("view has no list"))
		return
	}
	if err := st.Wait(r.Context()); err != nil {
		return
	}
	name, data := st.Fragment(view.ID(), listview.ParseQuery(r.URL.Query()))
	h.deps.ResponseHandler.WriteFragment(w, r, http.StatusOK, name, data)
}

// Navigation long-polls for the view's scheduled navigation. A client that
// goes away takes the view with it.
func (h *viewHandlers) Navigation(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Views.LookupFor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}

	timer := time.NewTimer(h.deps.pollTimeout())
	defer timer.Stop()

	select {
	case <-view.Navigation():
		target := view.Target()
		h.deps.Views.Unmount(view.ID())
		h.deps.ResponseHandler.Redirect(w, r, target)
	case <-timer.C:
		h.deps.ResponseHandler.WriteFragment(w, r, http.StatusOK, "poll",
			render.Poll{ViewID: view.ID(), Target: r.URL.Query().Get("to")})
	case <-r.Context().Done():
		h.deps.Views.Unmount(view.ID())
	}
}

// Unmount is sent by the page as it goes away. Only the view's owner can
// tear it down; anything else is a no-op.
func (h *viewHandlers) Unmount(w http.ResponseWriter, r *http.Request) {
	if view, err := h.deps.Views.LookupFor(r.Context(), chi.URLParam(r, "id")); err == nil {
		h.deps.Views.Unmount(view.ID())
	}
	w.WriteHeader(http.StatusNoContent)
}

// Terms renders the account terms inputs for the selected account type.
func (h *viewHandlers) Terms(w http.ResponseWriter, r *http.Request) {
	if _, err := h.deps.Views.LookupFor(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	draft := formsubmit.DraftFromForm(r.URL.Query(), services.AddAccountSchema)
	h.deps.ResponseHandler.WriteFragment(w, r, http.StatusOK, "account-terms", draft)
}
