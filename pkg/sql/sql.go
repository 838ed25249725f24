// package sql wraps the golang database/sql package around a single
// read-only SQLite connection, the three main functions of this package are:
// 1. open a database file and make sure it really is a SQLite database
// 2. execute queries and hand back ordered rows of tagged values
// 3. provide helper functions to get meta information from the database
package sql

import (
	"context"
	stdSQL "database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rest-go/sqlitejson/pkg/log"
)

// DriverName is the name modernc.org/sqlite registers itself under
const DriverName = "sqlite"

// DB is a wrapper of the golang database/sql DB struct that owns exactly one
// read-only connection to a SQLite file
type DB struct {
	*stdSQL.DB
	Path string
}

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dsn builds a read-only URI filename so that a missing file is reported
// instead of silently created
func dsn(path string) string {
	// a leading "//" would be read as a URI authority
	for strings.HasPrefix(path, "//") {
		path = path[1:]
	}
	// increase busy timeout to tolerate a writer holding the lock
	// https://www.sqlite.org/c3ref/busy_timeout.html
	return "file:" + uriEscaper.Replace(path) + "?mode=ro&_pragma=busy_timeout(5000)"
}

// Open connects to the database file at path, pings it and probes the
// catalog so that a file which is not a database fails here
func Open(path string) (*DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, newError(KindOpen, "open database", err)
	}
	if info.IsDir() {
		return nil, newError(KindOpen, "open database", fmt.Errorf("%s is a directory", path))
	}

	log.Debugf("open database: %s", path)
	db, err := stdSQL.Open(DriverName, dsn(path))
	if err != nil {
		return nil, newError(KindOpen, "open database", err)
	}
	// the connection is owned by a single export, never shared
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, newError(KindOpen, "ping database", err)
	}
	d := &DB{DB: db, Path: path}
	if _, err = d.FetchOne(context.Background(), "SELECT COUNT(*) FROM sqlite_master"); err != nil {
		db.Close()
		// report the engine error itself, not the query failure around it
		var dbErr *Error
		if errors.As(err, &dbErr) && dbErr.Err != nil {
			err = dbErr.Err
		}
		return nil, newError(KindOpen, "read database catalog", err)
	}
	return d, nil
}

// FetchRows execute query and fetch data from database, it always return an
// array or error. Column order of every row follows the result set.
func (db *DB) FetchRows(ctx context.Context, query string, args ...any) ([]Row, error) {
	log.Debugf("fetch rows, query: %v, args: %v", query, args)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newError(KindQuery, "failed to run query", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newError(KindQuery, "failed to get columns from database", err)
	}

	columnCount := len(columns)
	objects := []Row{}
	for rows.Next() {
		cells := make([]any, columnCount)
		scanArgs := make([]any, columnCount)
		for i := range cells {
			scanArgs[i] = &cells[i]
		}
		if err = rows.Scan(scanArgs...); err != nil {
			return nil, newError(KindQuery, "failed to scan data from database", err)
		}

		values := make([]Value, columnCount)
		for i, cell := range cells {
			v, err := ValueOf(cell)
			if err != nil {
				return nil, newError(KindQuery, fmt.Sprintf("failed to convert column %s", columns[i]), err)
			}
			values[i] = v
		}
		objects = append(objects, Row{columns: columns, values: values})
	}
	if err = rows.Err(); err != nil {
		return nil, newError(KindQuery, "failed to fetch rows from database", err)
	}
	return objects, nil
}

// FetchOne execute query and fetch data from database, it returns one row or error
func (db *DB) FetchOne(ctx context.Context, query string, args ...any) (Row, error) {
	objects, err := db.FetchRows(ctx, query, args...)
	if err != nil {
		return Row{}, err
	}

	if len(objects) == 0 {
		return Row{}, newError(KindQuery, "fetch one", errors.New("not found"))
	} else if len(objects) > 1 {
		return Row{}, newError(KindQuery, "fetch one", errors.New("multiple rows found in database"))
	}

	return objects[0], nil
}
