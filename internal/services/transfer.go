package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

type transferAPI interface {
	CustomerAccounts(ctx context.Context, customerID string) ([]models.Account, error)
	Transfer(ctx context.Context, req dto.TransferRequest) (dto.StatusResponse, error)
}

var TransferSchema = formsubmit.Schema{
	{Name: "toAccount", Label: "Recipient account", Kind: formsubmit.Integer, Required: true, Min: formsubmit.Bound(1)},
	{Name: "amount", Label: "Amount", Kind: formsubmit.Decimal, Required: true, Min: formsubmit.Bound(1)},
}

// TransferResult is what the success message is rendered from.
type TransferResult struct {
	Message string
	Amount  float64
}

// TransferPage pairs the customer's accounts with the transfer form. The
// first account is the source and its balance caps the amount.
type TransferPage struct {
	Accounts *listview.Controller[models.Account]
	Form     *formsubmit.Controller[dto.TransferRequest, TransferResult]
}

// Source returns the account money is sent from, if the accounts loaded.
func (p *TransferPage) Source() (models.Account, bool) {
	items := p.Accounts.Items()
	if len(items) == 0 {
		return models.Account{}, false
	}
	return items[0], true
}

func (p *TransferPage) Close() {
	p.Form.Close()
	p.Accounts.Close()
}

type transferService struct {
	api transferAPI
}

func NewTransferService(api transferAPI) *transferService {
	return &transferService{api: api}
}

func (s *transferService) Page(customerID string) *TransferPage {
	page := &TransferPage{}
	page.Accounts = listview.New(CustomerAccountSpec, func(ctx context.Context) ([]models.Account, error) {
		return s.api.CustomerAccounts(ctx, customerID)
	}, "Failed to load your accounts")

	page.Form = formsubmit.New(formsubmit.Config[dto.TransferRequest, TransferResult]{
		Schema: TransferSchema,
		Build: func(v formsubmit.Values) (dto.TransferRequest, error) {
			src, ok := page.Source()
			if !ok {
				return dto.TransferRequest{}, errs.NewValidationError("amount", "No account available to transfer from")
			}
			limit := formsubmit.Bound(src.Balance.Float64())
			if v.Decimal("amount").GreaterThan(*limit) {
				return dto.TransferRequest{}, errs.NewValidationError("amount",
					fmt.Sprintf("Amount must be at most %s", limit.String()))
			}
			return dto.TransferRequest{
				FromAccount: src.AccountID,
				ToAccount:   v.Int("toAccount"),
				Amount:      v.Float("amount"),
			}, nil
		},
		Submit: func(ctx context.Context, req dto.TransferRequest) (TransferResult, error) {
			resp, err := s.api.Transfer(ctx, req)
			if err != nil {
				return TransferResult{}, err
			}
			return TransferResult{Message: resp.Message, Amount: req.Amount}, nil
		},
		Success: func(r TransferResult) string {
			if r.Message != "" {
				return r.Message
			}
			return "Successfully transferred $" + strconv.FormatFloat(r.Amount, 'f', -1, 64)
		},
		// balances changed, so the source account is read again
		After: func(ctx context.Context, _ TransferResult) {
			if err := page.Accounts.Refresh(ctx); err != nil {
				logger.FromContext(ctx).Warn("account refresh after transfer failed", "error", err)
			}
		},
		Fallback:         "Transfer failed. Please try again.",
		RejectedFallback: "Transfer failed",
	})
	return page
}
