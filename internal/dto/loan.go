package dto

type ApplyLoanRequest struct {
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
	BranchName string  `json:"branchName"`
	Purpose    string  `json:"purpose"`
}

// LoanDecision is the moderation transition applied to a pending request.
type LoanDecision string

const (
	LoanApprove LoanDecision = "Approved"
	LoanReject  LoanDecision = "Rejected"
)

func (d LoanDecision) Valid() bool {
	return d == LoanApprove || d == LoanReject
}

type LoanStatusUpdate struct {
	Status  LoanDecision `json:"status"`
	Remarks string       `json:"remarks"`
}
