package services

import (
	"context"
	"fmt"

	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
)

type directoryAPI interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}

// AccountSpec: search on the id, filter by type, sort by balance.
var AccountSpec = listview.Spec[models.Account]{
	Search:   func(a models.Account) string { return listview.IDText(a.AccountID) },
	Category: func(a models.Account) string { return a.Type },
	Categories: map[string]string{
		"savings": models.AccountTypeSavings,
		"current": models.AccountTypeCurrent,
	},
	SortKey:   func(a models.Account) float64 { return a.Balance.Float64() },
	NoRecords: "No accounts found",
	NoMatches: func(q listview.Query) string {
		if q.Search != "" {
			return fmt.Sprintf("No accounts found with ID %q", q.Search)
		}
		return "No accounts found"
	},
}

var CustomerSpec = listview.Spec[models.Customer]{
	Search:    func(c models.Customer) string { return listview.IDText(c.CustomerID) },
	NoRecords: "No customers found.",
	NoMatches: func(listview.Query) string { return "No customers found with that ID." },
}

var BranchSpec = listview.Spec[models.Branch]{
	Search:    func(b models.Branch) string { return b.BranchName },
	FoldCase:  true,
	NoRecords: "No branches found",
	NoMatches: func(q listview.Query) string {
		return fmt.Sprintf("No branches found with name containing %q", q.Search)
	},
}

var EmployeeSpec = listview.Spec[models.Employee]{
	Search:    func(e models.Employee) string { return listview.IDText(e.EmployeeID) },
	NoRecords: "No employees found",
	NoMatches: func(q listview.Query) string {
		return fmt.Sprintf("No employees found with ID %q", q.Search)
	},
}

var TransactionSpec = listview.Spec[models.Transaction]{
	Search:    func(t models.Transaction) string { return listview.IDText(t.TransactionID) },
	NoRecords: "No transactions found",
	NoMatches: func(q listview.Query) string {
		return fmt.Sprintf("No transactions found with ID containing %q", q.Search)
	},
}

type directoryService struct {
	api directoryAPI
}

// NewDirectoryService builds the staff directory lists. Each call returns
// a fresh, unmounted controller.
func NewDirectoryService(api directoryAPI) *directoryService {
	return &directoryService{api: api}
}

func (s *directoryService) Accounts() *listview.Controller[models.Account] {
	return listview.New(AccountSpec, s.api.ListAccounts, "Failed to load accounts")
}

func (s *directoryService) Customers() *listview.Controller[models.Customer] {
	return listview.New(CustomerSpec, s.api.ListCustomers, "Failed to load customers. Please try again later.")
}

func (s *directoryService) Branches() *listview.Controller[models.Branch] {
	return listview.New(BranchSpec, s.api.ListBranches, "Failed to load branches")
}

func (s *directoryService) Employees() *listview.Controller[models.Employee] {
	return listview.New(EmployeeSpec, s.api.ListEmployees, "Failed to load employees")
}

func (s *directoryService) Transactions() *listview.Controller[models.Transaction] {
	return listview.New(TransactionSpec, s.api.ListTransactions, "Failed to load transactions")
}
