package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/health"
)

// CheckFunc fetches and classifies the resource list once.
type CheckFunc func(ctx context.Context) (*health.Report, error)

// refreshMsg carries the result of a check.
type refreshMsg struct {
	report *health.Report
	err    error
	at     time.Time
}

// tickMsg schedules the next check.
type tickMsg time.Time

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)
)

// columns mirror the plain report's header and column width.
func columns() []table.Column {
	cols := make([]table.Column, len(health.Header))
	for i, title := range health.Header {
		cols[i] = table.Column{Title: title, Width: health.ColumnWidth}
	}
	return cols
}

func overallCell(s health.Status) string {
	switch s {
	case health.StatusPass:
		return "✓ " + string(s)
	case health.StatusFail:
		return "✗ " + string(s)
	default:
		return string(s)
	}
}

func rows(report *health.Report) []table.Row {
	if report == nil {
		return nil
	}
	out := make([]table.Row, len(report.Rows))
	for i, r := range report.Rows {
		out[i] = table.Row{r.Name, string(r.UpdateStatus), string(r.RuntimeStatus), overallCell(r.Overall)}
	}
	return out
}

// WatchModel is the bubbletea model for the live resource table
type WatchModel struct {
	ctx      context.Context
	check    CheckFunc
	interval time.Duration

	table    table.Model
	report   *health.Report
	err      error
	updated  time.Time
	quitting bool
}

// NewWatch creates a watch model that calls check every interval.
func NewWatch(ctx context.Context, check CheckFunc, interval time.Duration) WatchModel {
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("39")).
		Bold(true)
	t.SetStyles(styles)

	return WatchModel{
		ctx:      ctx,
		check:    check,
		interval: interval,
		table:    t,
	}
}

func (m WatchModel) refresh() tea.Cmd {
	return func() tea.Msg {
		report, err := m.check(m.ctx)
		return refreshMsg{report: report, err: err, at: time.Now()}
	}
}

func (m WatchModel) Init() tea.Cmd {
	return m.refresh()
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := msg.Height - 8
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)
		return m, nil

	case refreshMsg:
		// A refresh cut short by shutdown says nothing about tilt.
		if msg.err != nil && m.ctx.Err() != nil {
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
			m.updated = msg.at
			m.table.SetRows(rows(msg.report))
		}
		interval := m.interval
		return m, tea.Tick(interval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tickMsg:
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m WatchModel) status() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("✗ waiting for tilt: %v", m.err))
	}
	if m.report == nil {
		return "Loading resources..."
	}

	failed := m.report.Failed()
	total := len(m.report.Rows)
	line := fmt.Sprintf("%d/%d resources healthy (updated %s)", total-len(failed), total, m.updated.Format("15:04:05"))
	if len(failed) == 0 {
		return okStyle.Render("✓ " + line)
	}
	return errStyle.Render("✗ " + line)
}

func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tilt Resources"))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("refresh every %s • ↑/↓ navigate • q quit", m.interval)))
	return b.String()
}

// Report returns the last successfully fetched report, or nil.
func (m WatchModel) Report() *health.Report {
	return m.report
}

// Err returns the error from the most recent refresh, or nil.
func (m WatchModel) Err() error {
	return m.err
}

// RunWatch runs the watch program until the user quits or the program's
// context ends, and returns the final model. A cancelled context is a
// normal stop.
func RunWatch(m WatchModel, opts ...tea.ProgramOption) (WatchModel, error) {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m, fmt.Errorf("watch failed: %w", err)
	}
	wm, ok := final.(WatchModel)
	if !ok {
		if err != nil {
			return m, nil
		}
		return m, fmt.Errorf("unexpected model type %T", final)
	}
	return wm, nil
}
