package dto

import (
	"encoding/json"
	"errors"

	"github.com/GregMSThompson/bank-portal/internal/models"
)

// AccountTerms is the type-specific part of a new account. Only
// SavingsTerms and CurrentTerms implement it, so a request can never mix
// savings and current fields.
type AccountTerms interface {
	AccountType() string
	isAccountTerms()
}

type SavingsTerms struct {
	DailyWithdrawalLimit float64
	RateOfInterest       float64
}

func (SavingsTerms) AccountType() string { return models.AccountTypeSavings }
func (SavingsTerms) isAccountTerms()     {}

type CurrentTerms struct {
	TransactionCharges float64
}

func (CurrentTerms) AccountType() string { return models.AccountTypeCurrent }
func (CurrentTerms) isAccountTerms()     {}

// AddAccountRequest is posted to /addaccount.
type AddAccountRequest struct {
	CustomerID int64
	Balance    float64
	Terms      AccountTerms
}

type addAccountWire struct {
	CustomerID           int64    `json:"Customer_ID"`
	Balance              float64  `json:"Balance"`
	Type                 string   `json:"Type"`
	DailyWithdrawalLimit *float64 `json:"Daily_Withdrawal_Limit,omitempty"`
	RateOfInterest       *float64 `json:"Rate_of_Interest,omitempty"`
	TransactionCharges   *float64 `json:"Transaction_Charges,omitempty"`
}

func (r AddAccountRequest) MarshalJSON() ([]byte, error) {
	wire := addAccountWire{CustomerID: r.CustomerID, Balance: r.Balance}
	switch t := r.Terms.(type) {
	case SavingsTerms:
		wire.Type = t.AccountType()
		wire.DailyWithdrawalLimit = &t.DailyWithdrawalLimit
		wire.RateOfInterest = &t.RateOfInterest
	case CurrentTerms:
		wire.Type = t.AccountType()
		wire.TransactionCharges = &t.TransactionCharges
	default:
		return nil, errors.New("account terms are required")
	}
	return json.Marshal(wire)
}

type AddAccountResponse struct {
	AccountID FlexibleID `json:"Account_ID"`
}
