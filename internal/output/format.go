// Package output renders command results as human-readable text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Format selects the output mode.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Formatter writes command output in the selected format.
type Formatter struct {
	writer io.Writer
	format Format
	color  bool
}

// NewFormatter creates a formatter for w. Color is used only for text output
// to a terminal, and never when noColor is set or NO_COLOR-style environment
// variables are present.
func NewFormatter(w io.Writer, format Format, noColor bool) *Formatter {
	color := !noColor && !termenv.EnvNoColor()
	if f, ok := w.(*os.File); ok {
		color = color && isatty.IsTerminal(f.Fd())
	} else {
		color = false
	}
	return &Formatter{writer: w, format: format, color: color}
}

// JSONEnabled reports whether the formatter is in JSON mode.
func (f *Formatter) JSONEnabled() bool {
	return f.format == FormatJSON
}

// JSON writes v as indented JSON.
func (f *Formatter) JSON(v any) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Textln outputs plain text with a newline to the formatter's writer.
func (f *Formatter) Textln(format string, args ...any) {
	fmt.Fprintf(f.writer, format+"\n", args...)
}

// Line outputs a blank line.
func (f *Formatter) Line() {
	fmt.Fprintln(f.writer)
}

// Header outputs a bold section header.
func (f *Formatter) Header(s string) {
	if f.color {
		s = headerStyle.Render(s)
	}
	fmt.Fprintln(f.writer, s)
}

// Success outputs a result line marked as succeeded.
func (f *Formatter) Success(format string, args ...any) {
	mark := "✓"
	if f.color {
		mark = successStyle.Render(mark)
	}
	fmt.Fprintf(f.writer, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Dim outputs a de-emphasized line, used for hints.
func (f *Formatter) Dim(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if f.color {
		s = dimStyle.Render(s)
	}
	fmt.Fprintln(f.writer, s)
}

// ErrorResponse is the JSON shape for a failed command.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewError builds the JSON error payload.
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

// TermWidth returns the terminal width of stdout, defaulting to 80 when
// stdout is not a terminal.
func TermWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// Truncate shortens a string to a display width with an ellipsis, counting
// wide runes by their rendered width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// Pluralize returns singular or plural form based on count.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Table outputs tabular data in text format.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with headers.
func NewTable(w io.Writer, headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	return &Table{
		writer:  w,
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	for i, c := range cols {
		if i < len(t.widths) && runewidth.StringWidth(c) > t.widths[i] {
			t.widths[i] = runewidth.StringWidth(c)
		}
	}
	t.rows = append(t.rows, cols)
}

// Render outputs the table.
func (t *Table) Render() {
	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-runewidth.StringWidth(s))
	}

	line := func(cols []string) {
		parts := make([]string, len(t.headers))
		for i := range t.headers {
			c := ""
			if i < len(cols) {
				c = cols[i]
			}
			parts[i] = pad(c, t.widths[i])
		}
		fmt.Fprintln(t.writer, "  "+strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(t.headers)
	seps := make([]string, len(t.widths))
	for i, w := range t.widths {
		seps[i] = strings.Repeat("-", w)
	}
	line(seps)
	for _, row := range t.rows {
		line(row)
	}
}
