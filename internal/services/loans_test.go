package services

import (
	"testing"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/models"
	"github.com/GregMSThompson/bank-portal/pkg/helpers"
)

func TestApplyLoanRequiresBranch(t *testing.T) {
	api := newStubBankAPI()
	api.branches = []models.Branch{{BranchName: "Harbor"}}
	page := NewLoanService(api, time.Hour).ApplyPage("42", nil)
	defer page.Close()
	_ = page.Branches.Mount(helpers.TestCtx())

	state, _ := page.Form.Submit(helpers.TestCtx(), formsubmit.Draft{"amount": "5000", "purpose": "roof"})
	if state.Message != "Please select a branch" {
		t.Fatalf("unexpected message %q", state.Message)
	}
	state, _ = page.Form.Submit(helpers.TestCtx(), formsubmit.Draft{"amount": "5000", "branchName": "Nowhere", "purpose": "roof"})
	if state.Message != "Please select a branch" {
		t.Fatalf("unexpected message %q", state.Message)
	}
	state, _ = page.Form.Submit(helpers.TestCtx(), formsubmit.Draft{"amount": "999", "branchName": "Harbor", "purpose": "roof"})
	if state.Message != "Loan amount must be at least 1000" {
		t.Fatalf("unexpected message %q", state.Message)
	}
	if api.count("apply-loan") != 0 {
		t.Fatal("expected no application call")
	}
}

func TestApplyLoanSuccess(t *testing.T) {
	api := newStubBankAPI()
	api.branches = []models.Branch{{BranchName: "Harbor"}}
	api.statusResp = dto.StatusResponse{Success: true}
	nav := &navRecorder{}
	page := NewLoanService(api, time.Hour).ApplyPage("42", nav)
	defer page.Close()
	_ = page.Branches.Mount(helpers.TestCtx())

	state, err := page.Form.Submit(helpers.TestCtx(), formsubmit.Draft{"amount": "5000", "branchName": "Harbor", "purpose": "roof"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Message != "Loan application submitted successfully!" || state.NavigateTo != "/customer/loan-status" {
		t.Fatalf("unexpected state %+v", state)
	}
	want := dto.ApplyLoanRequest{CustomerID: "42", Amount: 5000, BranchName: "Harbor", Purpose: "roof"}
	if api.lastApplyLoan != want {
		t.Fatalf("unexpected payload %+v", api.lastApplyLoan)
	}
}

func TestModerationOnlyPending(t *testing.T) {
	api := newStubBankAPI()
	api.loanRequests = []models.LoanRequest{
		{RequestID: 1, Status: models.LoanPending},
		{RequestID: 2, Status: models.LoanApproved},
	}
	page := NewLoanService(api, time.Hour).ModerationPage()
	defer page.Close()
	_ = page.Requests.Mount(helpers.TestCtx())

	state, _ := page.Form.Submit(helpers.TestCtx(), formsubmit.Draft{"requestId": "2", "status": "Rejected"})
	if state.Message != "Request #2 is no longer pending" {
		t.Fatalf("unexpected message %q", state.Message)
	}
	if api.count("loan-status-update") != 0 {
		t.Fatal("expected no update call")
	}

	state, err := page.Form.Submit(helpers.TestCtx(), formsubmit.Draft{"requestId": "1", "status": "Approved", "remarks": "good history"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastUpdateID != 1 || api.lastUpdate != (dto.LoanStatusUpdate{Status: dto.LoanApprove, Remarks: "good history"}) {
		t.Fatalf("unexpected update %d %+v", api.lastUpdateID, api.lastUpdate)
	}
	if api.count("loan-requests") != 2 {
		t.Fatalf("expected the queue to be re-read, got %d reads", api.count("loan-requests"))
	}
	if state.Message != "Request #1 marked Approved" {
		t.Fatalf("unexpected message %q", state.Message)
	}
}
