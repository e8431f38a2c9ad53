// Package render turns page data into HTML. Pages are html/template files
// embedded in the binary and exposed as templ components, so a page body
// and the layout around it compose like any other component.
package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/GregMSThompson/bank-portal/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"money":      moneyAny,
	"date":       Date,
	"cell":       Cell,
	"percent":    percent,
	"query":      queryString,
	"optionalID": optionalID,
	"lower":      strings.ToLower,
	"qescape":    url.QueryEscape,
	"poll":       func(viewID, target string) Poll { return Poll{ViewID: viewID, Target: target} },
}

type Renderer struct {
	set *template.Template
}

func New() (*Renderer, error) {
	set, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{set: set}, nil
}

// MustNew panics when the embedded templates do not parse.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Component exposes the named template as a templ component.
func (r *Renderer) Component(name string, data any) templ.Component {
	t := r.set.Lookup(name)
	if t == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("template %q not found", name)
		})
	}
	return templ.FromGoHTML(t, data)
}

// LayoutData is what the page shell needs around a body.
type LayoutData struct {
	Title    string
	Identity *session.Identity
	ViewID   string
	Body     template.HTML
}

// Layout wraps body in the page shell.
func (r *Renderer) Layout(title string, id *session.Identity, viewID string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := templ.ToGoHTML(ctx, body)
		if err != nil {
			return err
		}
		return r.Component("layout", LayoutData{
			Title:    title,
			Identity: id,
			ViewID:   viewID,
			Body:     html,
		}).Render(ctx, w)
	})
}
