package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

type loanAPI interface {
	ListBranches(ctx context.Context) ([]models.Branch, error)
	ApplyLoan(ctx context.Context, req dto.ApplyLoanRequest) (dto.StatusResponse, error)
	LoanRequests(ctx context.Context) ([]models.LoanRequest, error)
	UpdateLoanStatus(ctx context.Context, requestID int64, update dto.LoanStatusUpdate) error
}

const MinLoanAmount = 1000

var ApplyLoanSchema = formsubmit.Schema{
	{Name: "amount", Label: "Loan amount", Kind: formsubmit.Decimal, Required: true, Min: formsubmit.Bound(MinLoanAmount)},
	{Name: "branchName", Label: "Branch", Kind: formsubmit.Text, Required: true, Missing: "Please select a branch"},
	{Name: "purpose", Label: "Purpose", Kind: formsubmit.Text, Required: true},
}

var LoanRequestSpec = listview.Spec[models.LoanRequest]{
	NoRecords: "No loan requests found.",
}

var ModerationSchema = formsubmit.Schema{
	{Name: "requestId", Label: "Request", Kind: formsubmit.Integer, Required: true},
	{Name: "status", Label: "Status", Kind: formsubmit.Choice, Required: true,
		Options: []string{string(dto.LoanApprove), string(dto.LoanReject)}},
	{Name: "remarks", Label: "Remarks", Kind: formsubmit.Text},
}

// ApplyLoanPage is the branch selector plus the application form.
type ApplyLoanPage struct {
	Branches *listview.Controller[models.Branch]
	Form     *formsubmit.Controller[dto.ApplyLoanRequest, dto.StatusResponse]
}

func (p *ApplyLoanPage) Close() {
	p.Form.Close()
	p.Branches.Close()
}

// Decision is one moderation transition.
type Decision struct {
	RequestID int64
	Update    dto.LoanStatusUpdate
}

// ModerationPage is the loan request queue. Only pending requests accept
// a decision, and each decision re-reads the queue.
type ModerationPage struct {
	Requests *listview.Controller[models.LoanRequest]
	Form     *formsubmit.Controller[Decision, Decision]
}

func (p *ModerationPage) Close() {
	p.Form.Close()
	p.Requests.Close()
}

type loanService struct {
	api   loanAPI
	delay time.Duration
}

func NewLoanService(api loanAPI, delay time.Duration) *loanService {
	return &loanService{api: api, delay: delay}
}

func (s *loanService) ApplyPage(customerID string, nav formsubmit.Navigator) *ApplyLoanPage {
	page := &ApplyLoanPage{
		Branches: listview.New(BranchSpec, s.api.ListBranches, "Failed to load branches. Please try again."),
	}
	page.Form = formsubmit.New(formsubmit.Config[dto.ApplyLoanRequest, dto.StatusResponse]{
		Schema: ApplyLoanSchema,
		Build: func(v formsubmit.Values) (dto.ApplyLoanRequest, error) {
			branch := v.String("branchName")
			if !hasBranch(page.Branches.Items(), branch) {
				return dto.ApplyLoanRequest{}, errs.NewValidationError("branchName", "Please select a branch")
			}
			return dto.ApplyLoanRequest{
				CustomerID: customerID,
				Amount:     v.Float("amount"),
				BranchName: branch,
				Purpose:    v.String("purpose"),
			}, nil
		},
		Submit:           s.api.ApplyLoan,
		Success:          func(dto.StatusResponse) string { return "Loan application submitted successfully!" },
		Fallback:         "An error occurred. Please try again.",
		RejectedFallback: "Failed to submit loan application",
		NavigateTo:       "/customer/loan-status",
		Delay:            s.delay,
		Navigator:        nav,
	})
	return page
}

func hasBranch(branches []models.Branch, name string) bool {
	for _, b := range branches {
		if b.BranchName == name {
			return true
		}
	}
	return false
}

func (s *loanService) ModerationPage() *ModerationPage {
	page := &ModerationPage{
		Requests: listview.New(LoanRequestSpec, s.api.LoanRequests, "Failed to fetch loan requests"),
	}
	page.Form = formsubmit.New(formsubmit.Config[Decision, Decision]{
		Schema: ModerationSchema,
		Build: func(v formsubmit.Values) (Decision, error) {
			id := v.Int("requestId")
			req, ok := findRequest(page.Requests.Items(), id)
			if !ok || !req.IsPending() {
				return Decision{}, errs.NewValidationError("requestId", fmt.Sprintf("Request #%d is no longer pending", id))
			}
			return Decision{
				RequestID: id,
				Update:    dto.LoanStatusUpdate{Status: dto.LoanDecision(v.String("status")), Remarks: v.String("remarks")},
			}, nil
		},
		Submit: func(ctx context.Context, d Decision) (Decision, error) {
			return d, s.api.UpdateLoanStatus(ctx, d.RequestID, d.Update)
		},
		Success: func(d Decision) string {
			return fmt.Sprintf("Request #%d marked %s", d.RequestID, d.Update.Status)
		},
		After: func(ctx context.Context, _ Decision) {
			if err := page.Requests.Refresh(ctx); err != nil {
				logger.FromContext(ctx).Warn("loan request refresh failed", "error", err)
			}
		},
		Fallback: "Failed to update loan status",
	})
	return page
}

func findRequest(reqs []models.LoanRequest, id int64) (models.LoanRequest, bool) {
	for _, r := range reqs {
		if r.RequestID == id {
			return r, true
		}
	}
	return models.LoanRequest{}, false
}
