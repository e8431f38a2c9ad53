package models

const (
	AccountTypeSavings = "Savings"
	AccountTypeCurrent = "Current"
)

// Account is a row from /accounts or /customer/{id}/accounts. Savings
// accounts carry the withdrawal limit and interest rate, current accounts
// the transaction charges.
type Account struct {
	AccountID            int64   `json:"Account_ID"`
	CustomerID           int64   `json:"Customer_ID,omitempty"`
	Balance              Number  `json:"Balance"`
	Type                 string  `json:"Type"`
	DailyWithdrawalLimit *Number `json:"Daily_Withdrawal_Limit,omitempty"`
	RateOfInterest       *Number `json:"Rate_of_Interest,omitempty"`
	TransactionCharges   *Number `json:"Transaction_Charges,omitempty"`
}

func (a Account) IsSavings() bool { return a.Type == AccountTypeSavings }
