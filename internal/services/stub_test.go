package services

import (
	"context"
	"sync"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/models"
)

// stubBankAPI answers every banking call from canned data and records the
// last request of each write.
type stubBankAPI struct {
	mu sync.Mutex

	accounts     []models.Account
	customers    []models.Customer
	branches     []models.Branch
	employees    []models.Employee
	transactions []models.Transaction
	loans        []models.Loan
	custTxs      []models.CustomerTransaction
	loanApps     []models.LoanApplication
	loanRequests []models.LoanRequest
	rows         []models.Row
	readErr      error

	calls map[string]int

	lastCustomerID  string
	lastAddCustomer dto.AddCustomerRequest
	lastAddAccount  dto.AddAccountRequest
	lastApplyLoan   dto.ApplyLoanRequest
	lastTransfer    dto.TransferRequest
	lastLogin       dto.LoginRequest
	lastUpdateID    int64
	lastUpdate      dto.LoanStatusUpdate
	lastQuery       dto.AnalyticsQuery

	addCustomerResp dto.AddCustomerResponse
	addAccountResp  dto.AddAccountResponse
	statusResp      dto.StatusResponse
	loginResp       dto.LoginResponse
	writeErr        error

	// afterTransfer replaces accounts once a transfer succeeds
	afterTransfer []models.Account
}

func newStubBankAPI() *stubBankAPI {
	return &stubBankAPI{calls: map[string]int{}}
}

func (s *stubBankAPI) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
}

func (s *stubBankAPI) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubBankAPI) ListAccounts(context.Context) ([]models.Account, error) {
	s.record("accounts")
	return s.accounts, s.readErr
}

func (s *stubBankAPI) ListCustomers(context.Context) ([]models.Customer, error) {
	s.record("customers")
	return s.customers, s.readErr
}

func (s *stubBankAPI) ListBranches(context.Context) ([]models.Branch, error) {
	s.record("branches")
	return s.branches, s.readErr
}

func (s *stubBankAPI) ListEmployees(context.Context) ([]models.Employee, error) {
	s.record("employees")
	return s.employees, s.readErr
}

func (s *stubBankAPI) ListTransactions(context.Context) ([]models.Transaction, error) {
	s.record("transactions")
	return s.transactions, s.readErr
}

func (s *stubBankAPI) CustomerAccounts(_ context.Context, id string) ([]models.Account, error) {
	s.record("customer-accounts")
	s.lastCustomerID = id
	return s.accounts, s.readErr
}

func (s *stubBankAPI) CustomerLoans(_ context.Context, id string) ([]models.Loan, error) {
	s.record("customer-loans")
	s.lastCustomerID = id
	return s.loans, s.readErr
}

func (s *stubBankAPI) CustomerTransactions(_ context.Context, id string) ([]models.CustomerTransaction, error) {
	s.record("customer-transactions")
	s.lastCustomerID = id
	return s.custTxs, s.readErr
}

func (s *stubBankAPI) LoanApplications(_ context.Context, id string) ([]models.LoanApplication, error) {
	s.record("loan-status")
	s.lastCustomerID = id
	return s.loanApps, s.readErr
}

func (s *stubBankAPI) LoanRequests(context.Context) ([]models.LoanRequest, error) {
	s.record("loan-requests")
	return s.loanRequests, s.readErr
}

func (s *stubBankAPI) RunAnalytics(_ context.Context, q dto.AnalyticsQuery) ([]models.Row, error) {
	s.record("analytics")
	s.lastQuery = q
	return s.rows, s.readErr
}

func (s *stubBankAPI) AddCustomer(_ context.Context, req dto.AddCustomerRequest) (dto.AddCustomerResponse, error) {
	s.record("addcustomer")
	s.lastAddCustomer = req
	return s.addCustomerResp, s.writeErr
}

func (s *stubBankAPI) AddAccount(_ context.Context, req dto.AddAccountRequest) (dto.AddAccountResponse, error) {
	s.record("addaccount")
	s.lastAddAccount = req
	return s.addAccountResp, s.writeErr
}

func (s *stubBankAPI) ApplyLoan(_ context.Context, req dto.ApplyLoanRequest) (dto.StatusResponse, error) {
	s.record("apply-loan")
	s.lastApplyLoan = req
	return s.statusResp, s.writeErr
}

func (s *stubBankAPI) Transfer(_ context.Context, req dto.TransferRequest) (dto.StatusResponse, error) {
	s.record("transfer")
	s.lastTransfer = req
	if s.writeErr == nil && s.afterTransfer != nil {
		s.accounts = s.afterTransfer
	}
	return s.statusResp, s.writeErr
}

func (s *stubBankAPI) UpdateLoanStatus(_ context.Context, id int64, update dto.LoanStatusUpdate) error {
	s.record("loan-status-update")
	s.lastUpdateID = id
	s.lastUpdate = update
	return s.writeErr
}

func (s *stubBankAPI) Login(_ context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	s.record("login")
	s.lastLogin = req
	return s.loginResp, s.writeErr
}

type navRecorder struct {
	mu      sync.Mutex
	targets []string
}

func (n *navRecorder) Navigate(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
}
