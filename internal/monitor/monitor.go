// Package monitor polls tilt until its resources are healthy.
package monitor

import (
	"context"
	"time"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/audit"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/health"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/logging"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/tilt"
)

// Fetcher reads the resource list from tilt. *tilt.Client implements it.
type Fetcher interface {
	UIResources(ctx context.Context) (*tilt.UIResourceList, error)
}

// Observer is called after every check with its report or error.
type Observer func(report *health.Report, err error)

// Monitor periodically checks the health of all tilt resources.
type Monitor struct {
	interval time.Duration
	fetcher  Fetcher
	auditLog *audit.Logger
	observer Observer

	last map[string]health.Status
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithAuditLogger records a health event whenever a resource changes verdict.
func WithAuditLogger(logger *audit.Logger) Option {
	return func(m *Monitor) {
		m.auditLog = logger
	}
}

// WithObserver sets a callback run after every check.
func WithObserver(fn Observer) Option {
	return func(m *Monitor) {
		m.observer = fn
	}
}

// New creates a new Monitor.
func New(interval time.Duration, fetcher Fetcher, opts ...Option) *Monitor {
	m := &Monitor{
		interval: interval,
		fetcher:  fetcher,
		last:     make(map[string]health.Status),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Check fetches and classifies the resource list once.
func (m *Monitor) Check(ctx context.Context) (*health.Report, error) {
	list, err := m.fetcher.UIResources(ctx)
	if err != nil {
		if m.observer != nil {
			m.observer(nil, err)
		}
		return nil, err
	}

	report := health.Evaluate(list)
	m.recordTransitions(report)
	if m.observer != nil {
		m.observer(report, nil)
	}
	return report, nil
}

// recordTransitions logs every resource whose verdict differs from the
// previous check. The first sighting of a resource counts as a transition.
func (m *Monitor) recordTransitions(report *health.Report) {
	for _, row := range report.Rows {
		prev, seen := m.last[row.Name]
		m.last[row.Name] = row.Overall
		if seen && prev == row.Overall {
			continue
		}

		logging.Debug("resource status changed", "resource", row.Name, "from", prev, "to", row.Overall)
		if m.auditLog != nil {
			if err := m.auditLog.LogEvent(audit.EventHealth, row.Name, string(row.Overall)); err != nil {
				logging.Warn("failed to write audit event", "resource", row.Name, "error", err)
			}
		}
	}
}

// WaitHealthy checks immediately and then on every interval until a check
// reports every resource healthy. Fetch errors are logged and retried.
// When ctx ends first it returns the last report obtained (possibly nil),
// the last fetch error if no report was ever obtained, and ctx.Err().
func (m *Monitor) WaitHealthy(ctx context.Context) (*health.Report, error) {
	logging.Debug("waiting for healthy resources", "interval", m.interval)

	var lastReport *health.Report
	var lastErr error

	check := func() bool {
		report, err := m.Check(ctx)
		if err != nil {
			// A query cut short by ctx says nothing about tilt.
			if ctx.Err() != nil {
				return false
			}
			logging.Info("tilt not ready", "error", err)
			lastErr = err
			return false
		}
		lastReport, lastErr = report, nil
		if !report.Healthy() {
			logging.Info("resources not ready", "failing", report.Failed())
			return false
		}
		return true
	}

	if check() {
		return lastReport, nil
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.recordTimeout(lastReport)
			return lastReport, &StoppedError{LastErr: lastErr, Err: ctx.Err()}
		case <-ticker.C:
			if check() {
				return lastReport, nil
			}
		}
	}
}

func (m *Monitor) recordTimeout(report *health.Report) {
	if m.auditLog == nil || report == nil {
		return
	}
	for _, name := range report.Failed() {
		if err := m.auditLog.LogEvent(audit.EventTimeout, name, string(health.StatusFail)); err != nil {
			logging.Warn("failed to write audit event", "resource", name, "error", err)
		}
	}
}

// StoppedError is returned by WaitHealthy when its context ends first.
type StoppedError struct {
	// LastErr is the most recent fetch error, nil if the last check fetched.
	LastErr error
	Err     error
}

func (e *StoppedError) Error() string {
	if e.LastErr != nil {
		return e.Err.Error() + " (last error: " + e.LastErr.Error() + ")"
	}
	return e.Err.Error()
}

func (e *StoppedError) Unwrap() error {
	return e.Err
}
