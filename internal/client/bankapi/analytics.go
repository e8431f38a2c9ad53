package bankapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/models"
)

// RunAnalytics executes a catalogued query. Rows keep the key order of the
// JSON objects so the first row can supply the column headers.
func (c *Client) RunAnalytics(ctx context.Context, q dto.AnalyticsQuery) ([]models.Row, error) {
	raw, err := c.do(ctx, http.MethodGet, q.Endpoint(), "/api/analytics/{query}", nil)
	if err != nil {
		return nil, err
	}
	return parseRows(raw)
}

// parseRows accepts a bare array or an object wrapping it under "rows" or
// "data".
func parseRows(raw []byte) ([]models.Row, error) {
	rows := []models.Row{}
	if len(raw) == 0 {
		return rows, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("decode analytics response: invalid json")
	}

	doc := gjson.ParseBytes(raw)
	if doc.IsObject() {
		switch {
		case doc.Get("rows").IsArray():
			doc = doc.Get("rows")
		case doc.Get("data").IsArray():
			doc = doc.Get("data")
		}
	}
	if doc.Type == gjson.Null {
		return rows, nil
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("decode analytics response: expected an array")
	}

	for _, item := range doc.Array() {
		if !item.IsObject() {
			continue
		}
		var row models.Row
		item.ForEach(func(key, value gjson.Result) bool {
			row.Columns = append(row.Columns, models.Column{Name: key.String(), Value: value.Value()})
			return true
		})
		rows = append(rows, row)
	}
	return rows, nil
}
