package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/middleware"
	"github.com/GregMSThompson/bank-portal/internal/mount"
	"github.com/GregMSThompson/bank-portal/internal/render"
	"github.com/GregMSThompson/bank-portal/internal/response"
	"github.com/GregMSThompson/bank-portal/internal/services"
	"github.com/GregMSThompson/bank-portal/internal/session"
)

type customerHandlers struct {
	deps *Deps
}

func NewCustomerHandlers(deps *Deps) *customerHandlers {
	return &customerHandlers{deps: deps}
}

func (h *customerHandlers) CustomerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireCustomer)
	r.Get("/", h.Home)
	r.Get("/accounts", h.Accounts)
	r.Get("/transactions", h.Transactions)
	r.Get("/loans", h.Loans)
	r.Get("/loan-status", h.LoanStatus)
	r.Get("/transfer", h.TransferPage)
	r.Post("/transfer", h.Transfer)
	r.Get("/apply-loan", h.ApplyLoanPage)
	r.Post("/apply-loan", h.ApplyLoan)
	return r
}

// customerID is set by the customer guard on every route of this handler.
func customerID(r *http.Request) string {
	id, _ := session.FromContext(r.Context())
	return id.UserID
}

func (h *customerHandlers) Home(w http.ResponseWriter, r *http.Request) {
	id, _ := session.FromContext(r.Context())
	h.deps.ResponseHandler.WritePage(w, r, response.Page{
		Title: "My banking",
		Name:  "customer-home",
		Data:  render.HomePage{Identity: id},
	})
}

func (h *customerHandlers) Accounts(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "customer-accounts", "My accounts", h.deps.CustomerSvc.Accounts(customerID(r)))
}

func (h *customerHandlers) Transactions(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "customer-transactions", "Transactions", h.deps.CustomerSvc.Transactions(customerID(r)))
}

func (h *customerHandlers) Loans(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "customer-loans", "My loans", h.deps.CustomerSvc.Loans(customerID(r)))
}

func (h *customerHandlers) LoanStatus(w http.ResponseWriter, r *http.Request) {
	mountList(h.deps, w, r, "loan-status", "Loan status", h.deps.CustomerSvc.LoanStatus(customerID(r)))
}

// mountTransfer loads the source accounts before the form is shown, since
// the amount cap depends on them.
func (h *customerHandlers) mountTransfer(r *http.Request) *mount.View {
	page := h.deps.TransferSvc.Page(customerID(r))
	view := h.deps.Views.Mount(r.Context(), "transfer", page)
	_ = page.Accounts.Mount(view.Context())
	return view
}

func (h *customerHandlers) TransferPage(w http.ResponseWriter, r *http.Request) {
	view := h.mountTransfer(r)
	page, _ := mount.StateOf[*services.TransferPage](view)
	h.writeTransfer(w, r, view, page)
}

func (h *customerHandlers) Transfer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewValidationError("form", "invalid form body"))
		return
	}
	view, page, err := formView[*services.TransferPage](h.deps, r, "transfer", h.mountTransfer)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	_, _ = page.Form.Submit(view.Context(), formsubmit.DraftFromForm(r.PostForm, services.TransferSchema))
	h.writeTransfer(w, r, view, page)
}

func (h *customerHandlers) writeTransfer(w http.ResponseWriter, r *http.Request, view *mount.View, page *services.TransferPage) {
	data := render.TransferPage{
		ViewID:   view.ID(),
		Accounts: page.Accounts.Status(listview.Query{}),
		Form:     page.Form.State(),
	}
	if src, ok := page.Source(); ok {
		data.Source = &src
	}
	h.deps.ResponseHandler.WritePage(w, r, response.Page{
		Title:  "Transfer money",
		Name:   "transfer",
		ViewID: view.ID(),
		Data:   data,
	})
}

func (h *customerHandlers) mountApplyLoan(r *http.Request) *mount.View {
	var view *mount.View
	page := h.deps.LoanSvc.ApplyPage(customerID(r), lazyNavigator(&view))
	view = h.deps.Views.Mount(r.Context(), "apply-loan", page)
	_ = page.Branches.Mount(view.Context())
	return view
}

func (h *customerHandlers) ApplyLoanPage(w http.ResponseWriter, r *http.Request) {
	view := h.mountApplyLoan(r)
	page, _ := mount.StateOf[*services.ApplyLoanPage](view)
	h.writeApplyLoan(w, r, view, page)
}

func (h *customerHandlers) ApplyLoan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.deps.ResponseHandler.HandleError(w, r, errs.NewValidationError("form", "invalid form body"))
		return
	}
	view, page, err := formView[*services.ApplyLoanPage](h.deps, r, "apply-loan", h.mountApplyLoan)
	if err != nil {
		h.deps.ResponseHandler.HandleError(w, r, err)
		return
	}
	_, _ = page.Form.Submit(view.Context(), formsubmit.DraftFromForm(r.PostForm, services.ApplyLoanSchema))
	h.writeApplyLoan(w, r, view, page)
}

func (h *customerHandlers) writeApplyLoan(w http.ResponseWriter, r *http.Request, view *mount.View, page *services.ApplyLoanPage) {
	h.deps.ResponseHandler.WritePage(w, r, response.Page{
		Title:  "Apply for a loan",
		Name:   "apply-loan",
		ViewID: view.ID(),
		Data: render.ApplyLoanPage{
			ViewID:   view.ID(),
			Branches: page.Branches.Status(listview.Query{}),
			Form:     page.Form.State(),
		},
	})
}
