package render

import (
	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/formsubmit"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
	"github.com/GregMSThompson/bank-portal/internal/session"
)

// Poll is the long-poll element a page renders once a navigation is
// scheduled.
type Poll struct {
	ViewID string
	Target string
}

// Items is the data of a list fragment.
type Items[T any] struct {
	ViewID string
	Status listview.Status[T]
}

// ListPage is the shell of a list page; the items arrive as a fragment.
type ListPage struct {
	ViewID string
	Query  listview.Query
}

type HomePage struct {
	Identity session.Identity
}

type LoginPage struct {
	Form formsubmit.State
}

type FormPage struct {
	ViewID string
	Form   formsubmit.State
}

type TransferPage struct {
	ViewID   string
	Accounts listview.Status[models.Account]
	Source   *models.Account
	Form     formsubmit.State
}

type ApplyLoanPage struct {
	ViewID   string
	Branches listview.Status[models.Branch]
	Form     formsubmit.State
}

type ModerationPage struct {
	ViewID   string
	Requests listview.Status[models.LoanRequest]
	Form     formsubmit.State
}

// AnalyticsResult is one catalogued query and, once run, its outcome.
type AnalyticsResult struct {
	ViewID  string
	Query   dto.AnalyticsQuery
	Ran     bool
	Status  listview.Status[models.Row]
	Headers []string
}

type AnalyticsPage struct {
	ViewID  string
	Results []AnalyticsResult
}

type ErrorPage struct {
	Status  int
	Message string
}
