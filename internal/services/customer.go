package services

import (
	"context"

	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
)

type customerAPI interface {
	CustomerAccounts(ctx context.Context, customerID string) ([]models.Account, error)
	CustomerLoans(ctx context.Context, customerID string) ([]models.Loan, error)
	CustomerTransactions(ctx context.Context, customerID string) ([]models.CustomerTransaction, error)
	LoanApplications(ctx context.Context, customerID string) ([]models.LoanApplication, error)
}

var CustomerAccountSpec = listview.Spec[models.Account]{
	NoRecords: "No accounts found",
}

var CustomerTransactionSpec = listview.Spec[models.CustomerTransaction]{
	Category: func(t models.CustomerTransaction) string { return t.Type },
	Categories: map[string]string{
		"credit": models.TransactionCredit,
		"debit":  models.TransactionDebit,
	},
	NoRecords: "No transactions found",
	NoMatches: func(listview.Query) string { return "No transactions found" },
}

var LoanSpec = listview.Spec[models.Loan]{
	NoRecords: "No active loans found",
}

var LoanStatusSpec = listview.Spec[models.LoanStatus]{
	NoRecords: "You have not applied for any loans yet.",
}

type customerService struct {
	api customerAPI
}

// NewCustomerService builds the lists scoped to the signed-in customer.
func NewCustomerService(api customerAPI) *customerService {
	return &customerService{api: api}
}

func (s *customerService) Accounts(customerID string) *listview.Controller[models.Account] {
	return listview.New(CustomerAccountSpec, func(ctx context.Context) ([]models.Account, error) {
		return s.api.CustomerAccounts(ctx, customerID)
	}, "Failed to load accounts")
}

func (s *customerService) Transactions(customerID string) *listview.Controller[models.CustomerTransaction] {
	return listview.New(CustomerTransactionSpec, func(ctx context.Context) ([]models.CustomerTransaction, error) {
		return s.api.CustomerTransactions(ctx, customerID)
	}, "Failed to load transactions")
}

func (s *customerService) Loans(customerID string) *listview.Controller[models.Loan] {
	return listview.New(LoanSpec, func(ctx context.Context) ([]models.Loan, error) {
		return s.api.CustomerLoans(ctx, customerID)
	}, "Failed to load loans")
}

func (s *customerService) LoanStatus(customerID string) *listview.Controller[models.LoanStatus] {
	return listview.New(LoanStatusSpec, func(ctx context.Context) ([]models.LoanStatus, error) {
		apps, err := s.api.LoanApplications(ctx, customerID)
		if err != nil {
			return nil, err
		}
		out := make([]models.LoanStatus, 0, len(apps))
		for _, a := range apps {
			out = append(out, NormalizeLoanStatus(a))
		}
		return out, nil
	}, "Failed to fetch loan status")
}

// NormalizeLoanStatus fills the display defaults for a loan application.
func NormalizeLoanStatus(a models.LoanApplication) models.LoanStatus {
	s := models.LoanStatus{
		RequestID:   a.RequestID,
		Amount:      a.RequestedAmount.Float64(),
		Branch:      a.Branch,
		Status:      a.Status,
		RequestDate: a.RequestDate,
	}
	if s.Branch == "" {
		s.Branch = "N/A"
	}
	if s.Status == "" {
		s.Status = models.LoanPending
	}
	return s
}
