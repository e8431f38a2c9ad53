package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
	"github.com/GregMSThompson/bank-portal/internal/mount"
	"github.com/GregMSThompson/bank-portal/internal/response"
	"github.com/GregMSThompson/bank-portal/internal/services"
	"github.com/GregMSThompson/bank-portal/internal/session"
)

// DefaultPollTimeout bounds one navigation long-poll; the page re-polls
// after it.
const DefaultPollTimeout = 25 * time.Second

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Views           *mount.Registry
	Sessions        SessionManager
	PollTimeout     time.Duration

	AuthSvc      AuthService
	DirectorySvc DirectoryService
	CustomerSvc  CustomerService
	StaffFormSvc StaffFormService
	TransferSvc  TransferService
	LoanSvc      LoanService
	AnalyticsSvc AnalyticsService
}

func (d *Deps) pollTimeout() time.Duration {
	if d.PollTimeout <= 0 {
		return DefaultPollTimeout
	}
	return d.PollTimeout
}

type SessionManager interface {
	Login(ctx context.Context, w http.ResponseWriter, r *http.Request, id session.Identity) (session.Identity, error)
	Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

type AuthService interface {
	LoginForm(start func(ctx context.Context, id session.Identity) error) *formsubmit.Controller[dto.LoginRequest, session.Identity]
}

type DirectoryService interface {
	Accounts() *listview.Controller[models.Account]
	Customers() *listview.Controller[models.Customer]
	Branches() *listview.Controller[models.Branch]
	Employees() *listview.Controller[models.Employee]
	Transactions() *listview.Controller[models.Transaction]
}

type CustomerService interface {
	Accounts(customerID string) *listview.Controller[models.Account]
	Transactions(customerID string) *listview.Controller[models.CustomerTransaction]
	Loans(customerID string) *listview.Controller[models.Loan]
	LoanStatus(customerID string) *listview.Controller[models.LoanStatus]
}

type StaffFormService interface {
	AddCustomer(nav formsubmit.Navigator) *formsubmit.Controller[dto.AddCustomerRequest, dto.AddCustomerResponse]
	AddAccount(nav formsubmit.Navigator) *formsubmit.Controller[dto.AddAccountRequest, dto.AddAccountResponse]
}

type TransferService interface {
	Page(customerID string) *services.TransferPage
}

type LoanService interface {
	ApplyPage(customerID string, nav formsubmit.Navigator) *services.ApplyLoanPage
	ModerationPage() *services.ModerationPage
}

type AnalyticsService interface {
	Board() *services.AnalyticsBoard
}
