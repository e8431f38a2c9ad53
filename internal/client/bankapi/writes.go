package bankapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
)

// Login checks credentials. A response with success=false is returned as
// an error carrying the server's message, if any.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, "/login", "/login", req)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	resp, err := decode[dto.LoginResponse](raw, "/login")
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if !resp.Success {
		return resp, errs.NewRejectedError(service, http.StatusOK, resp.Error)
	}
	return resp, nil
}

func (c *Client) AddCustomer(ctx context.Context, req dto.AddCustomerRequest) (dto.AddCustomerResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, "/addcustomer", "/addcustomer", req)
	if err != nil {
		return dto.AddCustomerResponse{}, err
	}
	return decode[dto.AddCustomerResponse](raw, "/addcustomer")
}

func (c *Client) AddAccount(ctx context.Context, req dto.AddAccountRequest) (dto.AddAccountResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, "/addaccount", "/addaccount", req)
	if err != nil {
		return dto.AddAccountResponse{}, err
	}
	return decode[dto.AddAccountResponse](raw, "/addaccount")
}

func (c *Client) ApplyLoan(ctx context.Context, req dto.ApplyLoanRequest) (dto.StatusResponse, error) {
	return c.statusCall(ctx, http.MethodPost, "/customer/apply-loan", "/customer/apply-loan", req)
}

func (c *Client) Transfer(ctx context.Context, req dto.TransferRequest) (dto.StatusResponse, error) {
	return c.statusCall(ctx, http.MethodPost, "/transfer", "/transfer", req)
}

func (c *Client) UpdateLoanStatus(ctx context.Context, requestID int64, update dto.LoanStatusUpdate) error {
	path := "/loan-request/" + strconv.FormatInt(requestID, 10) + "/status"
	_, err := c.do(ctx, http.MethodPatch, path, "/loan-request/{id}/status", update)
	return err
}

// statusCall posts to an endpoint answering with the success envelope.
func (c *Client) statusCall(ctx context.Context, method, path, endpoint string, payload any) (dto.StatusResponse, error) {
	raw, err := c.do(ctx, method, path, endpoint, payload)
	if err != nil {
		return dto.StatusResponse{}, err
	}
	resp, err := decode[dto.StatusResponse](raw, endpoint)
	if err != nil {
		return dto.StatusResponse{}, err
	}
	if !resp.Success {
		return resp, errs.NewRejectedError(service, http.StatusOK, resp.Error)
	}
	return resp, nil
}
