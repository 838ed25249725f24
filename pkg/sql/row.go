package sql

import "github.com/rest-go/sqlitejson/pkg/jsonutil"

// Row is one record returned by a query: column names mapped to values in
// result set order. Rows of the same result set share their columns slice.
type Row struct {
	columns []string
	values  []Value
}

// NewRow pairs columns and values, both must have the same length
func NewRow(columns []string, values []Value) Row {
	return Row{columns: columns, values: values}
}

func (r Row) Len() int {
	return len(r.columns)
}

func (r Row) Columns() []string {
	return r.columns
}

func (r Row) Values() []Value {
	return r.values
}

// Get returns the value of the first column called name
func (r Row) Get(name string) (Value, bool) {
	for i, c := range r.columns {
		if c == name {
			return r.values[i], true
		}
	}
	return Value{}, false
}

// Object converts the row to an ordered JSON object
func (r Row) Object(enc BlobEncoding) *jsonutil.Object {
	obj := jsonutil.NewObject(len(r.columns))
	for i, c := range r.columns {
		obj.Set(c, r.values[i].Native(enc))
	}
	return obj
}

// Map converts the row to a plain map, column order is lost
func (r Row) Map(enc BlobEncoding) map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i].Native(enc)
	}
	return m
}
