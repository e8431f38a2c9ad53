package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type directoryHandlers struct {
	deps *Deps
}

func NewDirectoryHandlers(deps *Deps) *directoryHandlers {
	return &directoryHandlers{deps: deps}
}

func (h *directoryHandlers) DirectoryRoutes(r chi.Router) {
	r.Get("/accounts", h.Accounts)
	r.Get("/customers", h.Customers)
	r.Get("/branches", h.Branches)
	r.Get("/employees", h.Employees)
	r.Get("/transactions", h.Transactions)
}

func (h *directoryHandlers) Accounts(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "accounts", "Accounts", h.deps.DirectorySvc.Accounts())
}

func (h *directoryHandlers) Customers(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "customers", "Customers", h.deps.DirectorySvc.Customers())
}

func (h *directoryHandlers) Branches(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "branches", "Branches", h.deps.DirectorySvc.Branches())
}

func (h *directoryHandlers) Employees(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "employees", "Employees", h.deps.DirectorySvc.Employees())
}

func (h *directoryHandlers) Transactions(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "transactions", "All transfers", h.deps.DirectorySvc.Transactions())
}
