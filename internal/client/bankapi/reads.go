package bankapi

import (
	"context"
	"net/url"

	"github.com/GregMSThompson/bank-portal/internal/models"
)

func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return getList[models.Account](ctx, c, "/accounts", "/accounts")
}

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return getList[models.Customer](ctx, c, "/customers", "/customers")
}

func (c *Client) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return getList[models.Branch](ctx, c, "/branches", "/branches")
}

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return getList[models.Employee](ctx, c, "/employees", "/employees")
}

func (c *Client) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return getList[models.Transaction](ctx, c, "/transactions", "/transactions")
}

func (c *Client) CustomerAccounts(ctx context.Context, customerID string) ([]models.Account, error) {
	return getList[models.Account](ctx, c, "/customer/"+url.PathEscape(customerID)+"/accounts", "/customer/{id}/accounts")
}

func (c *Client) CustomerLoans(ctx context.Context, customerID string) ([]models.Loan, error) {
	return getList[models.Loan](ctx, c, "/customer/"+url.PathEscape(customerID)+"/loans", "/customer/{id}/loans")
}

func (c *Client) CustomerTransactions(ctx context.Context, customerID string) ([]models.CustomerTransaction, error) {
	return getList[models.CustomerTransaction](ctx, c, "/customer/"+url.PathEscape(customerID)+"/transactions", "/customer/{id}/transactions")
}

func (c *Client) LoanApplications(ctx context.Context, customerID string) ([]models.LoanApplication, error) {
	return getList[models.LoanApplication](ctx, c, "/customer/loan-status/"+url.PathEscape(customerID), "/customer/loan-status/{id}")
}

func (c *Client) LoanRequests(ctx context.Context) ([]models.LoanRequest, error) {
	return getList[models.LoanRequest](ctx, c, "/loan-requests", "/loan-requests")
}
