package export

import (
	"github.com/rest-go/sqlitejson/pkg/jsonutil"
	"github.com/rest-go/sqlitejson/pkg/sql"
)

// TableMap maps table names to rows, in the order tables were added
type TableMap struct {
	names []string
	rows  map[string][]sql.Row
}

func newTableMap(size int) *TableMap {
	return &TableMap{
		names: make([]string, 0, size),
		rows:  make(map[string][]sql.Row, size),
	}
}

func (m *TableMap) set(name string, rows []sql.Row) {
	if _, ok := m.rows[name]; !ok {
		m.names = append(m.names, name)
	}
	m.rows[name] = rows
}

func (m *TableMap) Names() []string {
	return m.names
}

func (m *TableMap) Rows(name string) ([]sql.Row, bool) {
	rows, ok := m.rows[name]
	return rows, ok
}

func (m *TableMap) Len() int {
	return len(m.names)
}

func (m *TableMap) object(enc sql.BlobEncoding) *jsonutil.Object {
	obj := jsonutil.NewObject(len(m.names))
	for _, name := range m.names {
		rows := m.rows[name]
		objects := make([]any, 0, len(rows))
		for _, row := range rows {
			objects = append(objects, row.Object(enc))
		}
		obj.Set(name, objects)
	}
	return obj
}

// Document is the export of a whole database. Schema holds the
// `PRAGMA table_info` rows of every table and Data its rows, both have the
// same tables in the same order.
type Document struct {
	Schema *TableMap
	Data   *TableMap
}

// Object converts the document to its JSON form
func (d *Document) Object(enc sql.BlobEncoding) *jsonutil.Object {
	obj := jsonutil.NewObject(2)
	obj.Set("database_schema", d.Schema.object(enc))
	obj.Set("data", d.Data.object(enc))
	return obj
}

// Table summarizes one exported table
type Table struct {
	sql.Table
	Rows int
}

// Tables returns a summary of every table in export order, column
// descriptors that cannot be decoded are left out of Columns
func (d *Document) Tables() []Table {
	tables := make([]Table, 0, d.Schema.Len())
	for _, name := range d.Schema.Names() {
		descriptors, _ := d.Schema.Rows(name)
		columns := make([]sql.Column, 0, len(descriptors))
		for _, row := range descriptors {
			column, err := sql.ColumnFromRow(row)
			if err != nil {
				continue
			}
			columns = append(columns, column)
		}
		rows, _ := d.Data.Rows(name)
		tables = append(tables, Table{
			Table: sql.Table{Name: name, Columns: columns},
			Rows:  len(rows),
		})
	}
	return tables
}
