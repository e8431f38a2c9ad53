package handlers

import (
	"context"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/models"
	"github.com/GregMSThompson/bank-portal/internal/mount"
	"github.com/GregMSThompson/bank-portal/internal/render"
	"github.com/GregMSThompson/bank-portal/internal/response"
	"github.com/GregMSThompson/bank-portal/internal/services"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/pkg/helpers"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

// fakeBank is an in-memory banking API that counts every call.
type fakeBank struct {
	mu    sync.Mutex
	calls map[string]int

	accounts     []models.Account
	byCustomer   map[string][]models.Account
	loanRequests []models.LoanRequest
	branches     []models.Branch
	rows         []models.Row

	lastTransfer dto.TransferRequest
	lastUpdateID int64
	lastUpdate   dto.LoanStatusUpdate
}

func newFakeBank() *fakeBank {
	return &fakeBank{calls: map[string]int{}}
}

func (f *fakeBank) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBank) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBank) ListAccounts(context.Context) ([]models.Account, error) {
	f.record("ListAccounts")
	return f.accounts, nil
}

func (f *fakeBank) ListCustomers(context.Context) ([]models.Customer, error) {
	f.record("ListCustomers")
	return nil, nil
}

func (f *fakeBank) ListBranches(context.Context) ([]models.Branch, error) {
	f.record("ListBranches")
	return f.branches, nil
}

func (f *fakeBank) ListEmployees(context.Context) ([]models.Employee, error) {
	f.record("ListEmployees")
	return nil, nil
}

func (f *fakeBank) ListTransactions(context.Context) ([]models.Transaction, error) {
	f.record("ListTransactions")
	return nil, nil
}

func (f *fakeBank) CustomerAccounts(_ context.Context, customerID string) ([]models.Account, error) {
	f.record("CustomerAccounts")
	if accts, ok := f.byCustomer[customerID]; ok {
		return accts, nil
	}
	return f.accounts, nil
}

func (f *fakeBank) CustomerLoans(context.Context, string) ([]models.Loan, error) {
	f.record("CustomerLoans")
	return nil, nil
}

func (f *fakeBank) CustomerTransactions(context.Context, string) ([]models.CustomerTransaction, error) {
	f.record("CustomerTransactions")
	return nil, nil
}

func (f *fakeBank) LoanApplications(context.Context, string) ([]models.LoanApplication, error) {
	f.record("LoanApplications")
	return nil, nil
}

func (f *fakeBank) LoanRequests(context.Context) ([]models.LoanRequest, error) {
	f.record("LoanRequests")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LoanRequest(nil), f.loanRequests...), nil
}

func (f *fakeBank) Login(_ context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	f.record("Login")
	if req.Password != "secret" {
		return dto.LoginResponse{}, errs.NewRejectedError("bankapi", http.StatusUnauthorized, "Invalid credentials")
	}
	return dto.LoginResponse{Success: true, UserData: dto.LoginUserData{ID: dto.FlexibleID(req.ID)}}, nil
}

func (f *fakeBank) AddCustomer(context.Context, dto.AddCustomerRequest) (dto.AddCustomerResponse, error) {
	f.record("AddCustomer")
	return dto.AddCustomerResponse{CustomerID: "42"}, nil
}

func (f *fakeBank) AddAccount(context.Context, dto.AddAccountRequest) (dto.AddAccountResponse, error) {
	f.record("AddAccount")
	return dto.AddAccountResponse{AccountID: "77"}, nil
}

func (f *fakeBank) ApplyLoan(context.Context, dto.ApplyLoanRequest) (dto.StatusResponse, error) {
	f.record("ApplyLoan")
	return dto.StatusResponse{Success: true}, nil
}

func (f *fakeBank) Transfer(_ context.Context, req dto.TransferRequest) (dto.StatusResponse, error) {
	f.record("Transfer")
	f.mu.Lock()
	f.lastTransfer = req
	f.mu.Unlock()
	return dto.StatusResponse{Success: true}, nil
}

func (f *fakeBank) UpdateLoanStatus(_ context.Context, id int64, update dto.LoanStatusUpdate) error {
	f.record("UpdateLoanStatus")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdateID = id
	f.lastUpdate = update
	for i := range f.loanRequests {
		if f.loanRequests[i].RequestID == id {
			f.loanRequests[i].Status = string(update.Status)
		}
	}
	return nil
}

func (f *fakeBank) RunAnalytics(context.Context, dto.AnalyticsQuery) ([]models.Row, error) {
	f.record("RunAnalytics")
	return f.rows, nil
}

// newTestDeps wires real services, templates and a real registry around
// the fake bank.
func newTestDeps(bank *fakeBank) *Deps {
	delay := 10 * time.Millisecond
	return &Deps{
		Log:             helpers.TestLogger(),
		ResponseHandler: response.New(render.MustNew()),
		Views:           mount.NewRegistry(time.Minute),
		Sessions:        session.NewManager(session.NewMemoryStore(), session.CookieOptions{}),
		PollTimeout:     2 * time.Second,
		AuthSvc:         services.NewAuthService(bank),
		DirectorySvc:    services.NewDirectoryService(bank),
		CustomerSvc:     services.NewCustomerService(bank),
		StaffFormSvc:    services.NewStaffFormService(bank, delay),
		TransferSvc:     services.NewTransferService(bank),
		LoanSvc:         services.NewLoanService(bank, delay),
		AnalyticsSvc:    services.NewAnalyticsService(bank),
	}
}

// newTestRouter mounts the handlers with a test logger and, when id is
// set, a signed-in identity on every request. id is read per request, so a
// test can switch users by assigning through it.
func newTestRouter(d *Deps, id *session.Identity) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := logger.ToContext(req.Context(), helpers.TestLogger())
			if id != nil {
				ctx = session.ToContext(ctx, *id)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	NewAuthHandlers(d).AuthRoutes(r)
	NewDirectoryHandlers(d).DirectoryRoutes(r)
	NewStaffHandlers(d).StaffRoutes(r)
	r.Mount("/customer", NewCustomerHandlers(d).CustomerRoutes())
	r.Mount("/views", NewViewHandlers(d).ViewRoutes())
	return r
}

var (
	listViewID = regexp.MustCompile(`/views/([0-9a-f-]+)/items`)
	formViewID = regexp.MustCompile(`name="view" value="([0-9a-f-]+)"`)
)

func extractViewID(t *testing.T, re *regexp.Regexp, body string) string {
	t.Helper()
	m := re.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no view id in body: %s", body)
	}
	return m[1]
}
