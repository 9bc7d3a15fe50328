// Package report renders accumulated violations. The default annotation
// stream is the machine-readable contract consumed by CI; the table mode
// is for humans at a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/briefedition/verweislint/core/check"
)

// Mode selects the report rendering.
type Mode string

const (
	// ModeAnnotations emits one ::error annotation line per violation.
	ModeAnnotations Mode = "annotations"
	// ModeTable renders a table with a summary line.
	ModeTable Mode = "table"
)

// Write renders the violations in the given mode.
func Write(w io.Writer, mode Mode, violations []check.Violation) {
	if mode == ModeTable {
		WriteTable(w, violations)
		return
	}
	WriteAnnotations(w, violations)
}

// WriteAnnotations emits one line per violation in the fixed format
// ::error file=<path>,line=<line>::<message>. Output order is detection
// order, so two runs over unchanged inputs produce identical bytes.
func WriteAnnotations(w io.Writer, violations []check.Violation) {
	if len(violations) == 0 {
		fmt.Fprintln(w, "All references are valid.")
		return
	}
	for _, v := range violations {
		fmt.Fprintf(w, "::error file=%s,line=%s::%s\n", v.File, lineLabel(v.Line), v.Message)
	}
}

// WriteTable renders the violations as a table followed by a summary.
func WriteTable(w io.Writer, violations []check.Violation) {
	if len(violations) == 0 {
		fmt.Fprintln(w, "All references are valid.")
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if shouldColorize(w) {
		style := tw.Style()
		style.Color.Header = text.Colors{text.FgRed, text.Bold}
	}
	tw.AppendHeader(table.Row{"File", "Line", "Message"})
	for _, v := range violations {
		tw.AppendRow(table.Row{v.File, lineLabel(v.Line), v.Message})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	fmt.Fprintln(w, tw.Render())
	fmt.Fprintf(w, "%d reference error(s) found.\n", len(violations))
}

func lineLabel(line int) string {
	if line <= 0 {
		return "Unknown"
	}
	return strconv.Itoa(line)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
