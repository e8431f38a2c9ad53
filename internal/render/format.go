package render

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/GregMSThompson/bank-portal/internal/listview"
	"github.com/GregMSThompson/bank-portal/internal/models"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money formats an amount with thousands grouping and two decimals.
func Money(v float64) string {
	if v < 0 {
		return "-$" + printer.Sprintf("%.2f", math.Abs(v))
	}
	return "$" + printer.Sprintf("%.2f", v)
}

func moneyAny(v any) string {
	switch n := v.(type) {
	case float64:
		return Money(n)
	case models.Number:
		return Money(n.Float64())
	case *models.Number:
		if n == nil {
			return "-"
		}
		return Money(n.Float64())
	case int64:
		return Money(float64(n))
	case int:
		return Money(float64(n))
	}
	return fmt.Sprint(v)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02 15:04:05", "2006-01-02"}

// Date renders an API date as "Jan 2, 2006". Unparsable input is shown
// as sent.
func Date(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}

// Cell formats one analytic value.
func Cell(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return printer.Sprintf("%d", int64(n))
		}
		return printer.Sprintf("%.2f", n)
	case bool:
		return strconv.FormatBool(n)
	case string:
		return n
	}
	return fmt.Sprint(v)
}

func percent(v *models.Number) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(v.Float64(), 'f', 2, 64) + "%"
}

func queryString(q listview.Query) string {
	return q.Values().Encode()
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}
