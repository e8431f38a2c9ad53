package services

import (
	"errors"
	"testing"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
	"github.com/GregMSThompson/bank-portal/pkg/helpers"
)

func TestAnalyticsBoardRunsIndependently(t *testing.T) {
	api := newStubBankAPI()
	api.rows = []models.Row{{Columns: []models.Column{{Name: "Branch_Name", Value: "Harbor"}, {Name: "total_loan", Value: 10.0}}}}
	board := NewAnalyticsService(api).Board()
	defer board.Close()

	ctrl, err := board.Run(helpers.TestCtx(), "branch-loan-summary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastQuery.Slug != "branch-loan-summary" {
		t.Fatalf("unexpected query %q", api.lastQuery.Slug)
	}
	st := ctrl.Status(listview.Query{})
	if !st.Ready() {
		t.Fatalf("expected ready, got %v", st.Kind)
	}
	headers := Headers(st.Items)
	if len(headers) != 2 || headers[0] != "Branch_Name" || headers[1] != "total_loan" {
		t.Fatalf("unexpected headers %v", headers)
	}
	if board.Result("employee-service-load") != nil {
		t.Fatal("other queries should not have run")
	}

	if _, err := board.Run(helpers.TestCtx(), "branch-loan-summary"); err != nil {
		t.Fatalf("re-run failed: %v", err)
	}
	if api.count("analytics") != 2 {
		t.Fatalf("expected 2 runs, got %d", api.count("analytics"))
	}
}

func TestAnalyticsBoardRetriesAfterFailure(t *testing.T) {
	api := newStubBankAPI()
	api.readErr = errs.NewStatusError("bankapi", 500, "")
	board := NewAnalyticsService(api).Board()

	ctrl, _ := board.Run(helpers.TestCtx(), "employee-service-load")
	if st := ctrl.Status(listview.Query{}); !st.Failed() || st.Message != "Request failed" {
		t.Fatalf("unexpected status %+v", st)
	}

	api.readErr = nil
	ctrl, err := board.Run(helpers.TestCtx(), "employee-service-load")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := ctrl.Status(listview.Query{}); !st.Empty() || st.Message != "No results found for this query" {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestAnalyticsUnknownQuery(t *testing.T) {
	board := NewAnalyticsService(newStubBankAPI()).Board()
	_, err := board.Run(helpers.TestCtx(), "drop-tables")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}
