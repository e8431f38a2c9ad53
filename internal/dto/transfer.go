package dto

type TransferRequest struct {
	FromAccount int64   `json:"fromAccount"`
	ToAccount   int64   `json:"toAccount"`
	Amount      float64 `json:"amount"`
}
