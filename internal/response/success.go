package response

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"

	"github.com/GregMSThompson/bank-portal/internal/render"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

const (
	htmxRequestHeader  = "HX-Request"
	htmxRedirectHeader = "HX-Redirect"
)

// IsHTMX reports whether the request came from htmx and wants a fragment.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(htmxRequestHeader) == "true"
}

// Page is a full page: the named template wrapped in the layout, or the
// template alone for htmx requests.
type Page struct {
	Title  string
	Name   string
	Status int
	ViewID string
	Data   any
}

type layoutRenderer interface {
	Layout(title string, id *session.Identity, viewID string, body templ.Component) templ.Component
}

func (h *responseHandler) WritePage(w http.ResponseWriter, r *http.Request, page Page) {
	status := page.Status
	if status <= 0 {
		status = http.StatusOK
	}
	body := h.renderer.Component(page.Name, page.Data)

	component := body
	if lr, ok := h.renderer.(layoutRenderer); ok && !IsHTMX(r) {
		var id *session.Identity
		if ident, ok := session.FromContext(r.Context()); ok {
			id = &ident
		}
		component = lr.Layout(page.Title, id, page.ViewID, body)
	}
	h.write(w, r, status, component)
}

func (h *responseHandler) WriteFragment(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if status <= 0 {
		status = http.StatusOK
	}
	h.write(w, r, status, h.renderer.Component(name, data))
}

// write buffers the render so a template failure can still become an
// error response.
func (h *responseHandler) write(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		logger.FromContext(r.Context()).Error("failed to render page", "error", err)
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Redirect sends the browser to target: through HX-Redirect for htmx
// requests, 303 otherwise.
func (h *responseHandler) Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		w.Header().Set(htmxRedirectHeader, target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

var _ layoutRenderer = (*render.Renderer)(nil)
