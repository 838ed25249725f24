package sql

import (
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// QuoteIdentifier quotes name as a SQLite identifier, embedded double quotes
// are doubled
// https://www.sqlite.org/lang_keywords.html
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// SQLiteHelper builds the introspection and data queries of an export,
// every table name is quoted before it is put into a statement
type SQLiteHelper struct{}

func (h SQLiteHelper) GetTablesSQL() string {
	return "SELECT * FROM sqlite_master WHERE type = 'table'"
}

func (h SQLiteHelper) GetColumnsSQL(tableName string) string {
	return fmt.Sprintf("PRAGMA table_info(%s)", QuoteIdentifier(tableName))
}

// GetRowsSQL selects every row of tableName. Columns declared as a date or
// time type are selected through unary `+`, which drops their declared type
// so that the driver hands back the stored value instead of a parsed
// time.Time.
func (h SQLiteHelper) GetRowsSQL(tableName string, columns ...Column) string {
	raw := false
	for _, c := range columns {
		if isTimeType(c.Type) {
			raw = true
			break
		}
	}
	if !raw {
		return fmt.Sprintf("SELECT * FROM %s", QuoteIdentifier(tableName))
	}

	fields := make([]string, 0, len(columns))
	for _, c := range columns {
		name := QuoteIdentifier(c.Name)
		if isTimeType(c.Type) {
			fields = append(fields, fmt.Sprintf("+%s AS %s", name, name))
		} else {
			fields = append(fields, name)
		}
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ", "), QuoteIdentifier(tableName))
}

// isTimeType reports whether modernc parses text of a column declared as
// declType into time.Time
func isTimeType(declType string) bool {
	switch strings.ToUpper(strings.TrimSpace(declType)) {
	case "DATE", "DATETIME", "TIMESTAMP":
		return true
	}
	return false
}
