package models

const (
	TransactionCredit = "Credit"
	TransactionDebit  = "Debit"
)

// Transaction is a row from the staff-wide /transactions listing.
type Transaction struct {
	TransactionID     int64  `json:"Transaction_ID"`
	TransactionAmount Number `json:"Transaction_Amount"`
	TransactionDate   string `json:"Transaction_Date"`
	AccountID         int64  `json:"Account_ID"`
	CustomerID        int64  `json:"Customer_ID"`
	CustomerName      string `json:"Customer_Name"`
}

// CustomerTransaction is a row from /customer/{id}/transactions.
type CustomerTransaction struct {
	TransactionID     int64  `json:"Transaction_ID"`
	TransactionAmount Number `json:"Transaction_Amount"`
	TransactionDate   string `json:"Transaction_Date"`
	AccountID         int64  `json:"Account_ID"`
	Type              string `json:"type"`
	RelatedAccount    *int64 `json:"related_account,omitempty"`
}

func (t CustomerTransaction) IsCredit() bool { return t.Type == TransactionCredit }
