package services

import (
	"context"
	"sync"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
)

type analyticsAPI interface {
	RunAnalytics(ctx context.Context, q dto.AnalyticsQuery) ([]models.Row, error)
}

var RowSpec = listview.Spec[models.Row]{
	NoRecords: "No results found for this query",
}

// Headers returns the column names of the first row, in document order.
func Headers(rows []models.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	out := make([]string, 0, len(rows[0].Columns))
	for _, c := range rows[0].Columns {
		out = append(out, c.Name)
	}
	return out
}

// AnalyticsBoard holds one result per catalogued query. Queries run
// independently; each has its own loading and error state.
type AnalyticsBoard struct {
	api analyticsAPI

	mu      sync.Mutex
	results map[string]*listview.Controller[models.Row]
	closed  bool
}

type analyticsService struct {
	api analyticsAPI
}

func NewAnalyticsService(api analyticsAPI) *analyticsService {
	return &analyticsService{api: api}
}

func (s *analyticsService) Board() *AnalyticsBoard {
	return &AnalyticsBoard{api: s.api, results: map[string]*listview.Controller[models.Row]{}}
}

// Result returns the controller of a query that has been run, or nil.
func (b *AnalyticsBoard) Result(slug string) *listview.Controller[models.Row] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.results[slug]
}

// Run executes a query and blocks until its result is in. Re-running a
// query that succeeded refreshes it; one that failed starts over.
func (b *AnalyticsBoard) Run(ctx context.Context, slug string) (*listview.Controller[models.Row], error) {
	q, ok := dto.FindAnalyticsQuery(slug)
	if !ok {
		return nil, errs.NewNotFoundError("unknown analytics query")
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, errs.NewConflictError("analytics board is closed")
	}
	ctrl := b.results[slug]
	if ctrl != nil {
		st := ctrl.Status(listview.Query{})
		switch {
		case st.Loading():
			b.mu.Unlock()
			return ctrl, errs.NewConflictError("query already running")
		case st.Failed():
			ctrl.Close()
			ctrl = nil
		}
	}
	fresh := ctrl == nil
	if fresh {
		ctrl = listview.New(RowSpec, func(ctx context.Context) ([]models.Row, error) {
			return b.api.RunAnalytics(ctx, q)
		}, "Request failed")
		b.results[slug] = ctrl
	}
	b.mu.Unlock()

	if fresh {
		return ctrl, ctrl.Mount(ctx)
	}
	return ctrl, ctrl.Refresh(ctx)
}

func (b *AnalyticsBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for _, c := range b.results {
		c.Close()
	}
}
