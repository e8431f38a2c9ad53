package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
	"github.com/GregMSThompson/bank-portal/internal/mount"
	"github.com/GregMSThompson/bank-portal/internal/render"
	"github.com/GregMSThompson/bank-portal/internal/response"
	"github.com/GregMSThompson/bank-portal/internal/services"
)

type staffHandlers struct {
	deps *Deps
}

func NewStaffHandlers(deps *Deps) *staffHandlers {
	return &staffHandlers{deps: deps}
}

func (h *staffHandlers) StaffRoutes(r chi.Router) {
	r.Get("/addcustomer", h.AddCustomerPage)
	r.Post("/addcustomer", h.AddCustomer)
	r.Get("/addaccount", h.AddAccountPage)
	r.Post("/addaccount", h.AddAccount)
	r.Get("/loanrequests", h.LoanRequests)
	r.Post("/loanrequests/{id}/status", h.UpdateLoanStatus)
	r.Get("/analytics", h.Analytics)
	r.Post("/analytics/{query}", h.RunAnalytics)
}

type addCustomerForm = formsubmit.Controller[dto.AddCustomerRequest, dto.AddCustomerResponse]
type addAccountForm = formsubmit.Controller[dto.AddAccountRequest, dto.AddAccountResponse]

func (h *staffHandlers) mountAddCustomer(r *http.Request) *mount.View {
	var view *mount.View
	form := h.deps.StaffFormSvc.AddCustomer(lazyNavigator(&view))
	view = h.deps.Views.Mount(r.Context(), "addcustomer", form)
	return view
}

func (h *staffHandlers) AddCustomerPage(w http.ResponseWriter, r *http.Request) {
	view := h.mountAddCustomer(r)
	form, _ := mount.StateOf[*addCustomerForm](view)
	h.writeForm(w, r, view, "addcustomer", "Add customer", form.State())
}

func (h *staffHandlers) AddCustomer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewValidationError("form", "invalid form body"))
		return
	}
	view, form, err := formView[*addCustomerForm](h.deps, r, "addcustomer", h.mountAddCustomer)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	st, _ := form.Submit(view.Context(), formsubmit.DraftFromForm(r.PostForm, services.AddCustomerSchema))
	h.writeForm(w, r, view, "addcustomer", "Add customer", st)
}

func (h *staffHandlers) mountAddAccount(r *http.Request) *mount.View {
	var view *mount.View
	form := h.deps.StaffFormSvc.AddAccount(lazyNavigator(&view))
	view = h.deps.Views.Mount(r.Context(), "addaccount", form)
	return view
}

func (h *staffHandlers) AddAccountPage(w http.ResponseWriter, r *http.Request) {
	view := h.mountAddAccount(r)
	form, _ := mount.StateOf[*addAccountForm](view)
	st := form.State()
	st.Draft = formsubmit.Draft{"Type": models.AccountTypeSavings}
	h.writeForm(w, r, view, "addaccount", "Add account", st)
}

func (h *staffHandlers) AddAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewValidationError("form", "invalid form body"))
		return
	}
	view, form, err := formView[*addAccountForm](h.deps, r, "addaccount", h.mountAddAccount)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	st, _ := form.Submit(view.Context(), formsubmit.DraftFromForm(r.PostForm, services.AddAccountSchema))
	h.writeForm(w, r, view, "addaccount", "Add account", st)
}

func (h *staffHandlers) writeForm(w http.ResponseWriter, r *http.Request, view *mount.View, name, title string, st formsubmit.State) {
	h.deps.ResponseHandler.WritePage(w, r, response.Page{
		Title:  title,
		Name:   name,
		ViewID: view.ID(),
		Data:   render.FormPage{ViewID: view.ID(), Form: st},
	})
}

func (h *staffHandlers) mountModeration(r *http.Request) *mount.View {
	page := h.deps.LoanSvc.ModerationPage()
	view := h.deps.Views.Mount(r.Context(), "loanrequests", page)
	_ = page.Requests.Mount(view.Context())
	return view
}

func (h *staffHandlers) LoanRequests(w http.ResponseWriter, r *http.Request) {
	view := h.mountModeration(r)
	page, _ := mount.StateOf[*services.ModerationPage](view)
	h.writeModeration(w, r, view, page)
}

// UpdateLoanStatus approves or rejects one pending request, then shows
// the re-read queue.
func (h *staffHandlers) UpdateLoanStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewValidationError("form", "invalid form body"))
		return
	}
	view, page, err := formView[*services.ModerationPage](h.deps, r, "loanrequests", h.mountModeration)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	draft := formsubmit.Draft{
		"requestId": chi.URLParam(r, "id"),
		"status":    r.PostForm.Get("status"),
		"remarks":   r.PostForm.Get("remarks"),
	}
	_, _ = page.Form.Submit(view.Context(), draft)
	h.writeModeration(w, r, view, page)
}

func (h *staffHandlers) writeModeration(w http.ResponseWriter, r *http.Request, view *mount.View, page *services.ModerationPage) {
	h.deps.ResponseHandler.WritePage(w, r, response.Page{
		Title:  "Loan requests",
		Name:   "loanrequests",
		ViewID: view.ID(),
		Data: render.ModerationPage{
			ViewID:   view.ID(),
			Requests: page.Requests.Status(listview.Query{}),
			Form:     page.Form.State(),
		},
	})
}

func (h *staffHandlers) mountAnalytics(r *http.Request) *mount.View {
	return h.deps.Views.Mount(r.Context(), "analytics", h.deps.AnalyticsSvc.Board())
}

func (h *staffHandlers) Analytics(w http.ResponseWriter, r *http.Request) {
	view := h.mountAnalytics(r)
	board, _ := mount.StateOf[*services.AnalyticsBoard](view)
	h.writeAnalytics(w, r, view, board)
}

// RunAnalytics executes one catalogued query. htmx requests get only that
// query's card back.
func (h *staffHandlers) RunAnalytics(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewValidationError("form", "invalid form body"))
		return
	}
	slug := chi.URLParam(r, "query")
	q, ok := dto.FindAnalyticsQuery(slug)
	if !ok {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewNotFoundError("unknown analytics query"))
		return
	}
	view, board, err := formView[*services.AnalyticsBoard](h.deps, r, "analytics", h.mountAnalytics)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	if ctrl, err := board.Run(view.Context(), slug); ctrl == nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}

	if response.IsHTMX(r) {
		h.deps.ResponseHandler.WriteFragment(w, r, http.StatusOK, "analytics-result", analyticsResult(view.ID(), q, board))
		return
	}
	h.writeAnalytics(w, r, view, board)
}

func analyticsResult(viewID string, q dto.AnalyticsQuery, board *services.AnalyticsBoard) render.AnalyticsResult {
	res := render.AnalyticsResult{ViewID: viewID, Query: q}
	if ctrl := board.Result(q.Slug); ctrl != nil {
		res.Ran = true
		res.Status = ctrl.Status(listview.Query{})
		res.Headers = services.Headers(ctrl.Items())
	}
	return res
}

func (h *staffHandlers) writeAnalytics(w http.ResponseWriter, r *http.Request, view *mount.View, board *services.AnalyticsBoard) {
	data := render.AnalyticsPage{ViewID: view.ID()}
	for _, q := range dto.AnalyticsCatalog {
		data.Results = append(data.Results, analyticsResult(view.ID(), q, board))
	}
	h.deps.ResponseHandler.WritePage(w, r, response.Page{
		Title:  "Analytics",
		Name:   "analytics",
		ViewID: view.ID(),
		Data:   data,
	})
}
