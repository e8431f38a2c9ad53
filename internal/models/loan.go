package models

import "strings"

const (
	LoanPending  = "Pending"
	LoanApproved = "Approved"
	LoanRejected = "Rejected"
)

// Loan is an active loan from /customer/{id}/loans.
type Loan struct {
	LoanNumber int64  `json:"Loan_Number"`
	Amount     Number `json:"Amount"`
	BranchName string `json:"Branch_Name"`
}

// LoanRequest is an application waiting in (or processed by) the
// moderation queue.
type LoanRequest struct {
	RequestID       int64  `json:"Request_ID"`
	CustomerID      int64  `json:"Customer_ID"`
	CustomerName    string `json:"Customer_Name"`
	RequestedAmount Number `json:"Requested_Amount"`
	RequestDate     string `json:"Request_Date"`
	LoanPurpose     string `json:"Loan_Purpose"`
	PreferredBranch string `json:"Preferred_Branch"`
	Status          string `json:"Status"`
	Remarks         string `json:"Remarks"`
}

func (r LoanRequest) IsPending() bool { return strings.EqualFold(r.Status, LoanPending) }

// LoanApplication is the raw row of /customer/loan-status/{id}.
type LoanApplication struct {
	RequestID       int64  `json:"requestId"`
	RequestedAmount Number `json:"Requested_Amount"`
	Branch          string `json:"branch"`
	Status          string `json:"status"`
	RequestDate     string `json:"Request_Date"`
}

// LoanStatus is a LoanApplication normalized for display.
type LoanStatus struct {
	RequestID   int64
	Amount      float64
	Branch      string
	Status      string
	RequestDate string
}
