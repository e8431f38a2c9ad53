package formsubmit

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/bank-portal/internal/errs"
)

// Draft is the raw, uncommitted form input: field name to string.
type Draft map[string]string

// DraftFromForm copies the first value of every schema field out of a
// parsed form.
func DraftFromForm(form url.Values, schema Schema) Draft {
	d := make(Draft, len(schema))
	for _, f := range schema {
		d[f.Name] = form.Get(f.Name)
	}
	return d
}

func (d Draft) Get(name string) string { return d[name] }

func (d Draft) Clone() Draft {
	if d == nil {
		return Draft{}
	}
	return maps.Clone(d)
}

type Kind int

const (
	Text Kind = iota
	Integer
	Decimal
	Date
	Choice
)

const dateLayout = "2006-01-02"

// Field is one input's constraints, mirroring the native required, type,
// min and max attributes.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	Min      *decimal.Decimal
	Max      *decimal.Decimal
	Options  []string
	// Missing overrides the "is required" message.
	Missing string
	// When limits the field to drafts where it applies, e.g. savings-only
	// inputs keyed on the account type.
	When func(Draft) bool
}

func Bound(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// Schema is the ordered set of fields a page validates at submit time.
type Schema []Field

// Values holds the coerced fields of a validated draft.
type Values struct {
	raw      Draft
	numbers  map[string]decimal.Decimal
	integers map[string]int64
}

func (v Values) String(name string) string { return strings.TrimSpace(v.raw[name]) }
func (v Values) Int(name string) int64     { return v.integers[name] }
func (v Values) Decimal(name string) decimal.Decimal {
	return v.numbers[name]
}
func (v Values) Float(name string) float64 { return v.numbers[name].InexactFloat64() }

// Validate coerces every applicable field and enforces the constraints.
// The first violation is returned as a ValidationError.
func (s Schema) Validate(d Draft) (Values, error) {
	vals := Values{raw: d, numbers: map[string]decimal.Decimal{}, integers: map[string]int64{}}
	for _, f := range s {
		if f.When != nil && !f.When(d) {
			continue
		}
		if err := f.coerce(d.Get(f.Name), &vals); err != nil {
			return Values{}, err
		}
	}
	return vals, nil
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func (f Field) coerce(raw string, vals *Values) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if f.Required {
			if f.Missing != "" {
				return errs.NewValidationError(f.Name, f.Missing)
			}
			return errs.NewValidationError(f.Name, fmt.Sprintf("%s is required", f.label()))
		}
		return nil
	}

	switch f.Kind {
	case Integer:
		n, err := decimal.NewFromString(raw)
		if err != nil || !n.IsInteger() {
			return errs.NewValidationError(f.Name, fmt.Sprintf("%s must be a whole number", f.label()))
		}
		if err := f.checkRange(n); err != nil {
			return err
		}
		vals.integers[f.Name] = n.IntPart()
		vals.numbers[f.Name] = n
	case Decimal:
		n, err := decimal.NewFromString(raw)
		if err != nil {
			return errs.NewValidationError(f.Name, fmt.Sprintf("%s must be a number", f.label()))
		}
		if err := f.checkRange(n); err != nil {
			return err
		}
		vals.numbers[f.Name] = n
	case Date:
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return errs.NewValidationError(f.Name, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", f.label()))
		}
	case Choice:
		for _, opt := range f.Options {
			if raw == opt {
				return nil
			}
		}
		return errs.NewValidationError(f.Name, fmt.Sprintf("%s must be one of %s", f.label(), strings.Join(f.Options, ", ")))
	}
	return nil
}

func (f Field) checkRange(n decimal.Decimal) error {
	if f.Min != nil && n.LessThan(*f.Min) {
		return errs.NewValidationError(f.Name, fmt.Sprintf("%s must be at least %s", f.label(), f.Min.String()))
	}
	if f.Max != nil && n.GreaterThan(*f.Max) {
		return errs.NewValidationError(f.Name, fmt.Sprintf("%s must be at most %s", f.label(), f.Max.String()))
	}
	return nil
}
