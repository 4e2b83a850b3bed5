package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	ellipsis    = "..."
)

// colorEnabled is set from terminal detection and may be overridden.
var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled overrides color detection.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func colorize(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

func Green(s string) string  { return colorize(colorGreen, s) }
func Red(s string) string    { return colorize(colorRed, s) }
func Yellow(s string) string { return colorize(colorYellow, s) }
func Blue(s string) string   { return colorize(colorBlue, s) }
func Gray(s string) string   { return colorize(colorGray, s) }

// Table formats columnar output, sizing each column to its widest cell.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{maxWidths: make(map[int]int)}
}

// SetMaxWidth caps the visible width of col. Longer cells end in "...".
func (t *Table) SetMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AddRow appends a row. Rows may have different lengths.
func (t *Table) AddRow(cols ...string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		width := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok {
			width = min(width, maxW)
		}
		t.colWidths[i] = max(t.colWidths[i], width)
	}
	t.rows = append(t.rows, cols)
}

// Len returns the number of rows added.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w with columns separated by two spaces. The
// last column is never padded.
func (t *Table) Render(w io.Writer) {
	last := len(t.colWidths) - 1
	for _, row := range t.rows {
		var b strings.Builder
		for i, col := range row {
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(col)
			if i < last {
				b.WriteString(strings.Repeat(" ", t.colWidths[i]-visibleWidth(col)))
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// Truncate shortens s to maxWidth visible characters, ending in "..." when
// there is room for it. ANSI codes are kept, and a reset is appended if s
// contained any.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < len(ellipsis) {
		out, _ := cutVisible(s, maxWidth)
		return out
	}

	out, hasANSI := cutVisible(s, maxWidth-len(ellipsis))
	out += ellipsis
	if hasANSI {
		out += colorReset
	}
	return out
}

// cutVisible returns the prefix of s holding n visible characters plus any
// escape sequences before the cut, and whether s contains escape codes.
func cutVisible(s string, n int) (string, bool) {
	var b strings.Builder
	visible := 0
	inEscape, hasANSI := false, false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape, hasANSI = true, true
		case inEscape:
			inEscape = r != 'm'
		case visible >= n:
			return b.String(), hasANSI
		default:
			visible++
		}
		b.WriteRune(r)
	}
	return b.String(), hasANSI
}

// visibleWidth returns the number of characters in s outside ANSI escapes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			inEscape = r != 'm'
		default:
			width++
		}
	}
	return width
}
