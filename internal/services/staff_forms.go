package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/models"
)

type staffFormAPI interface {
	AddCustomer(ctx context.Context, req dto.AddCustomerRequest) (dto.AddCustomerResponse, error)
	AddAccount(ctx context.Context, req dto.AddAccountRequest) (dto.AddAccountResponse, error)
}

var AddCustomerSchema = formsubmit.Schema{
	{Name: "Name", Label: "Full name", Kind: formsubmit.Text, Required: true},
	{Name: "DOB", Label: "Date of birth", Kind: formsubmit.Date, Required: true},
	{Name: "Phone_Number", Label: "Phone number", Kind: formsubmit.Text, Required: true},
	{Name: "Street", Label: "Street address", Kind: formsubmit.Text, Required: true},
	{Name: "City", Kind: formsubmit.Text, Required: true},
	{Name: "State", Kind: formsubmit.Text, Required: true},
	{Name: "Pincode", Kind: formsubmit.Text, Required: true},
}

func isSavings(d formsubmit.Draft) bool { return d.Get("Type") == models.AccountTypeSavings }
func isCurrent(d formsubmit.Draft) bool { return !isSavings(d) }

var AddAccountSchema = formsubmit.Schema{
	{Name: "Customer_ID", Label: "Customer ID", Kind: formsubmit.Integer, Required: true},
	{Name: "Balance", Label: "Initial balance", Kind: formsubmit.Decimal, Required: true},
	{Name: "Type", Label: "Account type", Kind: formsubmit.Choice, Required: true,
		Options: []string{models.AccountTypeSavings, models.AccountTypeCurrent}},
	{Name: "Daily_Withdrawal_Limit", Label: "Daily withdrawal limit", Kind: formsubmit.Decimal, Required: true, When: isSavings},
	{Name: "Rate_of_Interest", Label: "Rate of interest", Kind: formsubmit.Decimal, Required: true, When: isSavings},
	{Name: "Transaction_Charges", Label: "Transaction charges", Kind: formsubmit.Decimal, Required: true, When: isCurrent},
}

// BuildAddCustomer keeps every field as the string the user typed.
func BuildAddCustomer(v formsubmit.Values) (dto.AddCustomerRequest, error) {
	return dto.AddCustomerRequest{
		Name:        v.String("Name"),
		DOB:         v.String("DOB"),
		PhoneNumber: v.String("Phone_Number"),
		Street:      v.String("Street"),
		City:        v.String("City"),
		State:       v.String("State"),
		Pincode:     v.String("Pincode"),
	}, nil
}

// BuildAddAccount picks the terms variant from the account type, so a
// payload only ever carries the fields of its own type.
func BuildAddAccount(v formsubmit.Values) (dto.AddAccountRequest, error) {
	req := dto.AddAccountRequest{
		CustomerID: v.Int("Customer_ID"),
		Balance:    v.Float("Balance"),
	}
	if v.String("Type") == models.AccountTypeSavings {
		req.Terms = dto.SavingsTerms{
			DailyWithdrawalLimit: v.Float("Daily_Withdrawal_Limit"),
			RateOfInterest:       v.Float("Rate_of_Interest"),
		}
	} else {
		req.Terms = dto.CurrentTerms{TransactionCharges: v.Float("Transaction_Charges")}
	}
	return req, nil
}

type staffFormService struct {
	api   staffFormAPI
	delay time.Duration
}

// NewStaffFormService builds the employee create forms. delay is the pause
// between the success message and the follow-up navigation.
func NewStaffFormService(api staffFormAPI, delay time.Duration) *staffFormService {
	return &staffFormService{api: api, delay: delay}
}

func (s *staffFormService) AddCustomer(nav formsubmit.Navigator) *formsubmit.Controller[dto.AddCustomerRequest, dto.AddCustomerResponse] {
	return formsubmit.New(formsubmit.Config[dto.AddCustomerRequest, dto.AddCustomerResponse]{
		Schema: AddCustomerSchema,
		Build:  BuildAddCustomer,
		Submit: s.api.AddCustomer,
		Success: func(r dto.AddCustomerResponse) string {
			return fmt.Sprintf("Customer added with ID: %s", r.CustomerID)
		},
		Fallback:   "Failed to add customer",
		NavigateTo: "/customers",
		Delay:      s.delay,
		Navigator:  nav,
	})
}

func (s *staffFormService) AddAccount(nav formsubmit.Navigator) *formsubmit.Controller[dto.AddAccountRequest, dto.AddAccountResponse] {
	return formsubmit.New(formsubmit.Config[dto.AddAccountRequest, dto.AddAccountResponse]{
		Schema: AddAccountSchema,
		Build:  BuildAddAccount,
		Submit: s.api.AddAccount,
		Success: func(r dto.AddAccountResponse) string {
			return fmt.Sprintf("Account created successfully with ID: %s", r.AccountID)
		},
		Fallback:   "Failed to create account",
		NavigateTo: "/accounts",
		Delay:      s.delay,
		Navigator:  nav,
	})
}
