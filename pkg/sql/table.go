package sql

import (
	"fmt"
	"strings"

	"github.com/rest-go/sqlitejson/pkg/jsonutil"
)

// Column is the typed form of one `PRAGMA table_info` row
type Column struct {
	CID          int64   `json:"cid"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	NotNull      int64   `json:"notnull"`
	DefaultValue *string `json:"dflt_value"`
	PK           int64   `json:"pk"`
}

func (c *Column) String() string {
	return fmt.Sprintf("%s %s", c.Name, c.Type)
}

// ColumnFromRow decodes a column descriptor row, a row without a text
// `name` field is a schema error
func ColumnFromRow(row Row) (Column, error) {
	var column Column
	name, ok := row.Get("name")
	if !ok || name.Type() != Text {
		return column, NewError(KindSchema, fmt.Sprintf("column descriptor without name: %v", row.Columns()))
	}
	if err := jsonutil.MapToStruct(row.Map(BlobText), &column); err != nil {
		return column, newError(KindSchema, fmt.Sprintf("decode column %s", name.Text()), err)
	}
	return column, nil
}

// Table represents a table in database with name and columns
type Table struct {
	Name    string
	Columns []Column
}

func (t *Table) String() string {
	var columnsBuilder strings.Builder
	columnsBuilder.WriteString("(\n")
	for i, c := range t.Columns {
		columnsBuilder.WriteString("  ")
		columnsBuilder.WriteString(c.String())
		if i < len(t.Columns)-1 {
			columnsBuilder.WriteString(",\n")
		}
	}
	columnsBuilder.WriteString("\n)")
	return fmt.Sprintf("%s %s", t.Name, columnsBuilder.String())
}
