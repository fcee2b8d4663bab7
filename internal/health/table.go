package health

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// ColumnWidth is the padded width of every table cell.
const ColumnWidth = 20

// Header is the table's first row.
var Header = []string{"Name", "Update", "Runtime", "Overall"}

// TableWriter prints a Report as fixed-width columns.
type TableWriter struct {
	w     io.Writer
	pass  lipgloss.Style
	fail  lipgloss.Style
	width int
}

// NewTableWriter creates a TableWriter for w. Colours are only emitted when
// w is a terminal that supports them.
func NewTableWriter(w io.Writer) *TableWriter {
	r := lipgloss.NewRenderer(w)
	return &TableWriter{
		w:     w,
		pass:  r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		width: ColumnWidth,
	}
}

// padding returns the spaces that left-justify s to the column width,
// counting code points. Longer values are not truncated.
func (t *TableWriter) padding(s string) string {
	if n := t.width - utf8.RuneCountInString(s); n > 0 {
		return strings.Repeat(" ", n)
	}
	return ""
}

func (t *TableWriter) pad(s string) string {
	return s + t.padding(s)
}

func (t *TableWriter) line(cells ...string) error {
	_, err := io.WriteString(t.w, strings.Join(cells, "")+"\n")
	return err
}

// overall renders the verdict cell. Padding is measured on the plain text
// so colour codes never shift the columns.
func (t *TableWriter) overall(s Status) string {
	text := string(s)
	switch s {
	case StatusPass:
		return t.pass.Render(text) + t.padding(text)
	case StatusFail:
		return t.fail.Render(text) + t.padding(text)
	default:
		return t.pad(text)
	}
}

// Write prints the header followed by one line per row.
func (t *TableWriter) Write(report *Report) error {
	header := make([]string, len(Header))
	for i, h := range Header {
		header[i] = t.pad(h)
	}
	if err := t.line(header...); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, r := range report.Rows {
		if err := t.line(t.pad(r.Name), t.pad(string(r.UpdateStatus)), t.pad(string(r.RuntimeStatus)), t.overall(r.Overall)); err != nil {
			return fmt.Errorf("failed to write row %s: %w", r.Name, err)
		}
	}
	return nil
}
