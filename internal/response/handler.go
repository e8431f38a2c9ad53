package response

import (
	"net/http"

	"github.com/a-h/templ"
)

type ResponseHandler interface {
	WritePage(w http.ResponseWriter, r *http.Request, page Page)
	WriteFragment(w http.ResponseWriter, r *http.Request, status int, name string, data any)
	Redirect(w http.ResponseWriter, r *http.Request, target string)
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// Renderer is the template side of the response handler.
type Renderer interface {
	Component(name string, data any) templ.Component
}

type responseHandler struct {
	renderer Renderer
}

func New(renderer Renderer) *responseHandler {
	return &responseHandler{renderer: renderer}
}
