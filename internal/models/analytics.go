package models

// Column is one cell of an analytic result row, kept in the order the API
// sent the keys.
type Column struct {
	Name  string
	Value any
}

// Row is one record of an analytic query result.
type Row struct {
	Columns []Column
}

func (r Row) Get(name string) (any, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}
