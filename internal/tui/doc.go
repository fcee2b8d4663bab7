// Package tui provides terminal user interface components for tilt-healthcheck.
//
// This package uses the Bubble Tea framework for the watch command's live
// resource table.
//
// # Watch
//
// The watch model refreshes the report on an interval and renders it as a
// table; q, esc or ctrl+c quit:
//
//	m := tui.NewWatch(ctx, mon.Check, 2*time.Second)
//	final, err := tui.RunWatch(m)
//	final.Report() // last report obtained, nil if tilt never answered
//	final.Err()    // last fetch error, nil if the last refresh succeeded
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - table component
//   - github.com/charmbracelet/lipgloss - Styling
package tui
