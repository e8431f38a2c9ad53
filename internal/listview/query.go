package listview

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

type SortOrder string

const (
	SortNone SortOrder = "none"
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// CategoryAll is the wildcard entry of every categorical filter.
const CategoryAll = "all"

// Query holds the local UI inputs of a list page. It never reaches the
// network.
type Query struct {
	Search   string
	Category string
	Sort     SortOrder
}

// ParseQuery reads q, type and sort from a request's query string.
// Unknown sort orders become SortNone; an empty category becomes the
// wildcard.
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:   values.Get("q"),
		Category: strings.ToLower(strings.TrimSpace(values.Get("type"))),
		Sort:     SortOrder(strings.ToLower(values.Get("sort"))),
	}
	if q.Category == "" {
		q.Category = CategoryAll
	}
	switch q.Sort {
	case SortAsc, SortDesc:
	default:
		q.Sort = SortNone
	}
	return q
}

// Values is the inverse of ParseQuery, used to build links that keep the
// current inputs.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != "" && q.Category != CategoryAll {
		v.Set("type", q.Category)
	}
	if q.Sort != "" && q.Sort != SortNone {
		v.Set("sort", string(q.Sort))
	}
	return v
}

// Filtered reports whether any filter input narrows the set.
func (q Query) Filtered() bool {
	return q.Search != "" || (q.Category != "" && q.Category != CategoryAll)
}

// Spec describes how one page filters and sorts its records. Zero-valued
// hooks disable the matching input.
type Spec[T any] struct {
	// Search returns the field free-text search matches against.
	Search func(T) string
	// FoldCase makes the search case-insensitive.
	FoldCase bool
	// Category returns the record's categorical field.
	Category func(T) string
	// Categories is the allow-list mapping query values to record values.
	// Query values outside it behave like CategoryAll.
	Categories map[string]string
	// SortKey returns the numeric field ordered by SortAsc/SortDesc.
	SortKey func(T) float64

	// NoRecords is shown when the collection itself is empty.
	NoRecords string
	// NoMatches is shown when filters removed every record.
	NoMatches func(Query) string
}

// IDText is the decimal form numeric IDs are searched in.
func IDText(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s Spec[T]) match(item T, q Query) bool {
	if q.Search != "" && s.Search != nil {
		field, needle := s.Search(item), q.Search
		if s.FoldCase {
			field, needle = strings.ToLower(field), strings.ToLower(needle)
		}
		if !strings.Contains(field, needle) {
			return false
		}
	}
	if s.Category != nil && q.Category != "" && q.Category != CategoryAll {
		want, ok := s.Categories[q.Category]
		if ok && s.Category(item) != want {
			return false
		}
	}
	return true
}

// Filter returns the records matching q, in their original order.
func (s Spec[T]) Filter(items []T, q Query) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if s.match(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a sorted copy. The sort is stable, so SortNone and ties keep
// fetch order.
func (s Spec[T]) Sort(items []T, order SortOrder) []T {
	out := slices.Clone(items)
	if s.SortKey == nil || (order != SortAsc && order != SortDesc) {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		ka, kb := s.SortKey(a), s.SortKey(b)
		var c int
		switch {
		case ka < kb:
			c = -1
		case ka > kb:
			c = 1
		}
		if order == SortDesc {
			c = -c
		}
		return c
	})
	return out
}

// Project is sort(filter(items)).
func (s Spec[T]) Project(items []T, q Query) []T {
	return s.Sort(s.Filter(items, q), q.Sort)
}

func (s Spec[T]) emptyMessage(q Query, total int) string {
	if total > 0 && q.Filtered() && s.NoMatches != nil {
		return s.NoMatches(q)
	}
	if s.NoRecords != "" {
		return s.NoRecords
	}
	return "No records found."
}
