// Package ui provides message printing utilities.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	outMu     sync.Mutex
	out       io.Writer = os.Stdout
	quietMode bool
)

// SetOutput redirects all ui output. Passing nil restores os.Stdout.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// SetQuietMode suppresses non-essential output (info, dim, boxes, banners).
// Errors and warnings are still printed.
func SetQuietMode(quiet bool) {
	outMu.Lock()
	defer outMu.Unlock()
	quietMode = quiet
}

// IsQuiet reports whether quiet mode is on.
func IsQuiet() bool {
	outMu.Lock()
	defer outMu.Unlock()
	return quietMode
}

func writeln(essential bool, s string) {
	outMu.Lock()
	defer outMu.Unlock()
	if quietMode && !essential {
		return
	}
	fmt.Fprintln(out, s)
}

// Println prints an empty line.
func Println() {
	writeln(false, "")
}

// PrintSuccess prints a success message.
//
// Parameters:
//   - format: Printf format string
//   - args: Printf arguments
func PrintSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	writeln(false, SuccessStyle.Render("✓ "+msg))
}

// PrintError prints an error message.
//
// Parameters:
//   - format: Printf format string
//   - args: Printf arguments
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	writeln(true, ErrorStyle.Render("✗ "+msg))
}

// PrintWarning prints a warning message.
//
// Parameters:
//   - format: Printf format string
//   - args: Printf arguments
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	writeln(true, WarningStyle.Render("⚠ "+msg))
}

// PrintInfo prints an informational message.
//
// Parameters:
//   - format: Printf format string
//   - args: Printf arguments
func PrintInfo(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	writeln(false, InfoStyle.Render(msg))
}

// PrintDim prints a dimmed message.
//
// Parameters:
//   - format: Printf format string
//   - args: Printf arguments
func PrintDim(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	writeln(false, DimStyle.Render(msg))
}

// PrintKeyValue prints an aligned "key: value" line.
func PrintKeyValue(key, value string) {
	writeln(false, fmt.Sprintf("  %s %s", DimStyle.Render(fmt.Sprintf("%-12s", key+":")), InfoStyle.Render(value)))
}

// PrintDiff prints a diff with syntax highlighting.
//
// Parameters:
//   - diff: The diff content, one "+", "-" or " " prefixed line each
func PrintDiff(diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			writeln(false, DiffAddStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			writeln(false, DiffRemoveStyle.Render(line))
		default:
			writeln(false, DiffContextStyle.Render(line))
		}
	}
}

// Table represents a table with dynamic column widths for formatted output.
type Table struct {
	// Headers contains the column header names.
	Headers []string

	// Rows contains all data rows.
	Rows [][]string
}

// NewTable creates a new table with the specified headers.
func NewTable(headers ...string) *Table {
	return &Table{
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a data row to the table.
func (t *Table) AddRow(values ...string) {
	t.Rows = append(t.Rows, values)
}

// calculateColumnWidths computes the width of each column in display cells.
func (t *Table) calculateColumnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range t.Rows {
		for i, val := range row {
			if i < len(widths) && displayWidth(val) > widths[i] {
				widths[i] = displayWidth(val)
			}
		}
	}
	return widths
}

// padRight pads a string to the specified display width with spaces.
func padRight(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Render prints the table with calculated column widths.
func (t *Table) Render() {
	if len(t.Headers) == 0 {
		return
	}

	widths := t.calculateColumnWidths()
	colGap := "  "

	var headerCells []string
	for i, header := range t.Headers {
		headerCells = append(headerCells, TableHeaderStyle.Render(padRight(header, widths[i])))
	}
	writeln(false, strings.Join(headerCells, colGap))

	totalWidth := len(colGap) * (len(widths) - 1)
	for _, w := range widths {
		totalWidth += w
	}
	writeln(false, DimStyle.Render(strings.Repeat("─", totalWidth)))

	for _, row := range t.Rows {
		var cells []string
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells = append(cells, TableCellStyle.Render(padRight(val, widths[i])))
		}
		writeln(false, strings.Join(cells, colGap))
	}
}
