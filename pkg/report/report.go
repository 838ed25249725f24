// Package report prints human readable summaries of an export to a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rest-go/sqlitejson/pkg/export"
)

// DimmedColor returns a dimmed *color.Color to print secondary information.
func DimmedColor() *color.Color {
	return color.RGB(128, 128, 128)
}

// NewTableWriter returns a new table.Writer with the styles of the
// summary.
func NewTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.Style().Color.Footer = text.Colors{text.FgCyan, text.Bold}

	return tw
}

// Summary writes one line per exported table with its column and row
// counts and primary key, followed by totals.
func Summary(w io.Writer, path string, tables []export.Table) {
	DimmedColor().Fprintf(w, "%s\n", path)

	tw := NewTableWriter()
	tw.AppendHeader(table.Row{"Table", "Columns", "Rows", "Primary Key"})

	totalRows := 0
	for _, t := range tables {
		tw.AppendRow(table.Row{t.Name, len(t.Columns), t.Rows, primaryKey(t)})
		totalRows += t.Rows
	}
	tw.AppendFooter(table.Row{"Total", fmt.Sprintf("%d tables", len(tables)), totalRows, ""})

	fmt.Fprintln(w, tw.Render())
}

// primaryKey lists the primary key columns in key order
func primaryKey(t export.Table) string {
	keys := make([]string, 0, 1)
	for pos := int64(1); ; pos++ {
		found := false
		for _, c := range t.Columns {
			if c.PK == pos {
				keys = append(keys, c.Name)
				found = true
			}
		}
		if !found {
			break
		}
	}
	return strings.Join(keys, ", ")
}
