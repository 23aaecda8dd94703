// Package render formats tabular query results for the terminal.
//
// Two output modes exist: an aligned, bordered table for humans and a
// tab-separated stream for pipes. The mode is resolved once per process from
// whether stdout is a terminal and never re-evaluated, so mixed usage within
// one invocation renders consistently.
package render

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/hpolloni/rdsline/pkg/results"
)

// Mode selects the output strategy.
type Mode int

// Output modes.
const (
	ModeInteractive Mode = iota // aligned table with borders and headers
	ModePipe                    // tab-separated values, no headers
)

// minColumnWidth keeps single-character columns legible.
const minColumnWidth = 2

// DetectMode resolves the output mode from whether f (normally os.Stdout) is
// attached to a terminal. Call it once at startup; pass the result around.
func DetectMode(f *os.File) Mode {
	if term.IsTerminal(int(f.Fd())) {
		return ModeInteractive
	}
	return ModePipe
}

// Render formats a query result according to mode. The returned text ends
// with a newline unless it is empty; the caller prints it as-is.
func Render(r *results.QueryResult, mode Mode) string {
	if mode == ModePipe {
		return renderTSV(r)
	}
	return renderTable(r)
}

func renderTSV(r *results.QueryResult) string {
	var b strings.Builder
	for _, row := range r.Rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(FormatValue(v))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderTable(r *results.QueryResult) string {
	if len(r.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(r.Columns))
	for i, name := range r.Columns {
		widths[i] = max(len(name), minColumnWidth)
	}
	cells := make([][]string, len(r.Rows))
	for ri, row := range r.Rows {
		cells[ri] = make([]string, len(row))
		for ci, v := range row {
			s := FormatValue(v)
			cells[ri][ci] = s
			if ci < len(widths) && len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}

	var b strings.Builder
	writeBorder(&b, widths)
	writeRow(&b, r.Columns, widths)
	writeSeparator(&b, widths)
	for _, row := range cells {
		writeRow(&b, row, widths)
	}
	writeBorder(&b, widths)
	return b.String()
}

func writeBorder(b *strings.Builder, widths []int) {
	for _, w := range widths {
		b.WriteByte('+')
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteString("+\n")
}

func writeSeparator(b *strings.Builder, widths []int) {
	for i, w := range widths {
		if i == 0 {
			b.WriteByte('|')
		} else {
			b.WriteByte('+')
		}
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteString("|\n")
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		fmt.Fprintf(b, "| %-*s ", w, cell)
	}
	b.WriteString("|\n")
}

// FormatValue converts one scalar to its display text. The conversion is
// mode-independent: nulls become empty strings, booleans lowercase, numbers
// their plain decimal form.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return "BLOB(" + hex.EncodeToString(val) + ")"
	default:
		return fmt.Sprintf("%v", val)
	}
}
