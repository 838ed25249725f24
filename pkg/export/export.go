// package export turns a SQLite database into a single JSON document
//
//	{"database_schema": {table: [column, ...]}, "data": {table: [row, ...]}}
//
// The pipeline is linear: open, enumerate tables, fetch schema, fetch data,
// serialize. Any error aborts the export and no partial output is produced.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rest-go/sqlitejson/pkg/jsonutil"
	"github.com/rest-go/sqlitejson/pkg/log"
	"github.com/rest-go/sqlitejson/pkg/sql"
)

// Exporter owns one connection to a database file for the duration of
// its exports. It is not safe for concurrent use, run concurrent exports
// with their own Exporter.
type Exporter struct {
	db     *sql.DB
	helper sql.SQLiteHelper

	tables       map[string]struct{}
	skipInternal bool
	blobEncoding sql.BlobEncoding
	indent       string
	progress     func(Progress)
}

// New opens the database file at path, failures are sql.KindOpen errors
func New(path string, opts ...Option) (*Exporter, error) {
	db, err := sql.Open(path)
	if err != nil {
		return nil, err
	}
	e := &Exporter{
		db:           db,
		blobEncoding: sql.BlobBase64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Close releases the connection
func (e *Exporter) Close() error {
	return e.db.Close()
}

// ListTables returns every `sqlite_master` row of type table with all its
// fields, in catalog order
func (e *Exporter) ListTables(ctx context.Context) ([]sql.Row, error) {
	rows, err := e.db.FetchRows(ctx, e.helper.GetTablesSQL())
	if err != nil {
		return nil, sql.Wrap(sql.KindQuery, "list tables", err)
	}
	return rows, nil
}

// ColumnsFor returns the `PRAGMA table_info` rows of tableName in column
// order
func (e *Exporter) ColumnsFor(ctx context.Context, tableName string) ([]sql.Row, error) {
	rows, err := e.db.FetchRows(ctx, e.helper.GetColumnsSQL(tableName))
	if err != nil {
		return nil, sql.Wrap(sql.KindQuery, fmt.Sprintf("fetch columns of %s", tableName), err)
	}
	for _, row := range rows {
		if _, err := sql.ColumnFromRow(row); err != nil {
			return nil, sql.Wrap(sql.KindSchema, fmt.Sprintf("fetch columns of %s", tableName), err)
		}
	}
	return rows, nil
}

// RowsFor returns every row of tableName with values as stored
func (e *Exporter) RowsFor(ctx context.Context, tableName string) ([]sql.Row, error) {
	descriptors, err := e.ColumnsFor(ctx, tableName)
	if err != nil {
		return nil, err
	}
	return e.rowsFor(ctx, tableName, descriptors)
}

// rowsFor fetches the rows of tableName, descriptors are its
// `PRAGMA table_info` rows
func (e *Exporter) rowsFor(ctx context.Context, tableName string, descriptors []sql.Row) ([]sql.Row, error) {
	columns := make([]sql.Column, 0, len(descriptors))
	for _, row := range descriptors {
		column, err := sql.ColumnFromRow(row)
		if err != nil {
			return nil, sql.Wrap(sql.KindSchema, fmt.Sprintf("fetch rows of %s", tableName), err)
		}
		columns = append(columns, column)
	}

	rows, err := e.db.FetchRows(ctx, e.helper.GetRowsSQL(tableName, columns...))
	if err != nil {
		return nil, sql.Wrap(sql.KindQuery, fmt.Sprintf("fetch rows of %s", tableName), err)
	}
	return rows, nil
}

func (e *Exporter) include(tableName string) bool {
	if e.skipInternal && strings.HasPrefix(strings.ToLower(tableName), "sqlite_") {
		return false
	}
	if len(e.tables) > 0 {
		_, ok := e.tables[tableName]
		return ok
	}
	return true
}

// BuildSchema fetches the columns of every table, it stops at the first
// error
func (e *Exporter) BuildSchema(ctx context.Context) (*TableMap, error) {
	tables, err := e.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	schema := newTableMap(len(tables))
	for _, table := range tables {
		name, ok := table.Get("name")
		if !ok || name.Type() != sql.Text {
			return nil, sql.NewError(sql.KindSchema, fmt.Sprintf("sqlite_master row without a table name: %v", table.Columns()))
		}
		tableName := name.Text()
		if !e.include(tableName) {
			log.Debugf("skip table %s", tableName)
			continue
		}

		columns, err := e.ColumnsFor(ctx, tableName)
		if err != nil {
			return nil, err
		}
		schema.set(tableName, columns)
	}

	for name := range e.tables {
		if _, ok := schema.Rows(name); !ok {
			log.Warnf("table %s not found in database %s", name, e.db.Path)
		}
	}
	return schema, nil
}

// BuildData fetches the rows of every table in schema, in schema order
func (e *Exporter) BuildData(ctx context.Context, schema *TableMap) (*TableMap, error) {
	data := newTableMap(schema.Len())
	for i, tableName := range schema.Names() {
		descriptors, _ := schema.Rows(tableName)
		rows, err := e.rowsFor(ctx, tableName, descriptors)
		if err != nil {
			return nil, err
		}
		data.set(tableName, rows)
		log.Debugf("fetched %d rows from table %s", len(rows), tableName)
		if e.progress != nil {
			e.progress(Progress{Table: tableName, Index: i + 1, Total: schema.Len(), Rows: len(rows)})
		}
	}
	return data, nil
}

// Build collects the schema and data of the database
func (e *Exporter) Build(ctx context.Context) (*Document, error) {
	schema, err := e.BuildSchema(ctx)
	if err != nil {
		return nil, err
	}
	data, err := e.BuildData(ctx, schema)
	if err != nil {
		return nil, err
	}
	return &Document{Schema: schema, Data: data}, nil
}

// Encode serializes doc with the exporter's blob encoding and indent
func (e *Exporter) Encode(doc *Document) ([]byte, error) {
	data, err := jsonutil.Marshal(doc.Object(e.blobEncoding), e.indent)
	if err != nil {
		return nil, fmt.Errorf("encode document, %w", err)
	}
	return data, nil
}

// Export returns the whole database as a JSON string
func (e *Exporter) Export(ctx context.Context) (string, error) {
	doc, err := e.Build(ctx)
	if err != nil {
		return "", err
	}
	data, err := e.Encode(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write writes the JSON document to w followed by a newline, nothing is
// written when the export fails
func (e *Exporter) Write(ctx context.Context, w io.Writer) error {
	doc, err := e.Build(ctx)
	if err != nil {
		return err
	}
	if err := jsonutil.Write(w, doc.Object(e.blobEncoding), e.indent); err != nil {
		return fmt.Errorf("write document, %w", err)
	}
	return nil
}
