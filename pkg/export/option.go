package export

import "github.com/rest-go/sqlitejson/pkg/sql"

type Option func(*Exporter)

// WithTables restricts the export to the named tables, they are still
// enumerated from sqlite_master so discovery order is kept
func WithTables(names ...string) Option {
	return func(e *Exporter) {
		if len(names) == 0 {
			return
		}
		e.tables = make(map[string]struct{}, len(names))
		for _, n := range names {
			e.tables[n] = struct{}{}
		}
	}
}

// WithoutInternal skips the engine's own sqlite_* tables such as
// sqlite_sequence
func WithoutInternal() Option {
	return func(e *Exporter) {
		e.skipInternal = true
	}
}

func WithBlobEncoding(enc sql.BlobEncoding) Option {
	return func(e *Exporter) {
		e.blobEncoding = enc
	}
}

// WithIndent pretty prints the document with indent per level
func WithIndent(indent string) Option {
	return func(e *Exporter) {
		e.indent = indent
	}
}

// Progress is reported once the rows of a table are fetched
type Progress struct {
	Table string
	Index int // 1-based position of Table
	Total int
	Rows  int
}

func WithProgress(f func(Progress)) Option {
	return func(e *Exporter) {
		e.progress = f
	}
}
