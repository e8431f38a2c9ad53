package bankapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/pkg/helpers"
)

type recorded struct {
	method string
	path   string
	body   []byte
}

func newServer(t *testing.T, status int, body string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second), rec
}

func TestListAccountsDecodesMixedNumbers(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[
		{"Account_ID":120,"Customer_ID":1,"Balance":"1500.50","Type":"Savings","Daily_Withdrawal_Limit":"500","Rate_of_Interest":3.5},
		{"Account_ID":412,"Customer_ID":2,"Balance":90,"Type":"Current","Transaction_Charges":"2.00"}
	]`)

	accounts, err := c.ListAccounts(helpers.TestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/accounts" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Balance.Float64() != 1500.5 || accounts[0].RateOfInterest.Float64() != 3.5 {
		t.Fatalf("unexpected savings account %+v", accounts[0])
	}
	if accounts[1].TransactionCharges == nil || accounts[1].TransactionCharges.Float64() != 2 {
		t.Fatalf("unexpected current account %+v", accounts[1])
	}
}

func TestListNullBodyIsEmpty(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `null`)
	branches, err := c.ListBranches(helpers.TestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if branches == nil || len(branches) != 0 {
		t.Fatalf("expected empty list, got %v", branches)
	}
}

func TestScopedReadEscapesID(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[]`)
	if _, err := c.CustomerLoans(helpers.TestCtx(), "12/3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.path != "/customer/12/3/loans" && rec.path != "/customer/12%2F3/loans" {
		t.Fatalf("unexpected path %q", rec.path)
	}
}

func TestErrorNormalisation(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantServer string
	}{
		{"structured body", http.StatusBadRequest, `{"error":"Customer not found"}`, "Customer not found"},
		{"empty body", http.StatusInternalServerError, ``, ""},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newServer(t, tt.status, tt.body)
			_, err := c.ListCustomers(helpers.TestCtx())
			var ext *errs.ExternalServiceError
			if !errors.As(err, &ext) {
				t.Fatalf("expected external service error, got %v", err)
			}
			if ext.Status != tt.status || ext.ServerMessage != tt.wantServer {
				t.Fatalf("unexpected error %+v", ext)
			}
			if got := errs.Display(err, "Failed to load customers"); got != helpers.FirstNonEmpty(tt.wantServer, "Failed to load customers") {
				t.Fatalf("unexpected display %q", got)
			}
		})
	}
}

func TestTransportFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).ListEmployees(helpers.TestCtx())
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) || !ext.Transient {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestLoginFailureWithoutMessage(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"success":false}`)
	_, err := c.Login(helpers.TestCtx(), dto.LoginRequest{ID: "1", Password: "x", UserType: dto.RoleCustomer})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := errs.Display(err, "Login failed"); got != "Login failed" {
		t.Fatalf("expected fallback, got %q", got)
	}

	var sent map[string]string
	if err := json.Unmarshal(rec.body, &sent); err != nil {
		t.Fatalf("bad request body: %v", err)
	}
	if sent["userType"] != "customer" || sent["id"] != "1" {
		t.Fatalf("unexpected login payload %v", sent)
	}
}

func TestLoginSuccess(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"success":true,"userData":{"id":42}}`)
	resp, err := c.Login(helpers.TestCtx(), dto.LoginRequest{ID: "42", Password: "x", UserType: dto.RoleCustomer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.UserData.ID != "42" {
		t.Fatalf("unexpected id %q", resp.UserData.ID)
	}
}

func TestTransferEnvelope(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"success":false,"error":"Insufficient funds"}`)
	_, err := c.Transfer(helpers.TestCtx(), dto.TransferRequest{FromAccount: 1, ToAccount: 2, Amount: 10})
	if got := errs.Display(err, "Transfer failed"); got != "Insufficient funds" {
		t.Fatalf("unexpected display %q", got)
	}
	if string(rec.body) != `{"fromAccount":1,"toAccount":2,"amount":10}` {
		t.Fatalf("unexpected payload %s", rec.body)
	}
}

func TestAddAccountSendsTaggedPayload(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, `{"Account_ID":"900"}`)
	resp, err := c.AddAccount(helpers.TestCtx(), dto.AddAccountRequest{
		CustomerID: 7,
		Balance:    1000,
		Terms:      dto.CurrentTerms{TransactionCharges: 5.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccountID != "900" {
		t.Fatalf("unexpected id %q", resp.AccountID)
	}
	if string(rec.body) != `{"Customer_ID":7,"Balance":1000,"Type":"Current","Transaction_Charges":5.5}` {
		t.Fatalf("unexpected payload %s", rec.body)
	}
}

func TestUpdateLoanStatus(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"success":true}`)
	err := c.UpdateLoanStatus(helpers.TestCtx(), 31, dto.LoanStatusUpdate{Status: dto.LoanApprove, Remarks: "ok"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodPatch || rec.path != "/loan-request/31/status" {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
}

func TestRunAnalyticsKeepsColumnOrder(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[{"Employee_ID":3,"Name":"Ana","num_customers":12},{"Employee_ID":4,"Name":"Bo","num_customers":2}]`)
	q, _ := dto.FindAnalyticsQuery("employee-service-load")

	rows, err := c.RunAnalytics(helpers.TestCtx(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.path != "/api/analytics/employee-service-load" {
		t.Fatalf("unexpected path %q", rec.path)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	names := []string{}
	for _, col := range rows[0].Columns {
		names = append(names, col.Name)
	}
	if len(names) != 3 || names[0] != "Employee_ID" || names[1] != "Name" || names[2] != "num_customers" {
		t.Fatalf("unexpected column order %v", names)
	}
	if v, _ := rows[1].Get("Name"); v != "Bo" {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestParseRowsWrapped(t *testing.T) {
	rows, err := parseRows([]byte(`{"rows":[{"a":1}]}`))
	if err != nil || len(rows) != 1 {
		t.Fatalf("unexpected result %v %v", rows, err)
	}
	if _, err := parseRows([]byte(`{"a":`)); err == nil {
		t.Fatal("expected invalid json error")
	}
}

func TestMetricsRecordOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, WithMetrics(m))
	if _, err := c.ListTransactions(helpers.TestCtx()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	var found bool
	for _, f := range families {
		if f.GetName() != "bankportal_bankapi_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["endpoint"] == "/transactions" && labels["code"] == "200" && metric.GetCounter().GetValue() == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected one recorded /transactions request")
	}
}
