package health

import (
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/errors"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/tilt"
)

// Status is the overall verdict for a resource.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// acceptable holds the status values that count as healthy. Update and
// runtime statuses share the same spelling for both.
var acceptable = sets.New(
	string(tilt.UpdateStatusOK),
	string(tilt.UpdateStatusNotApplicable),
)

// Row is the classified status of a single resource.
type Row struct {
	Name          string
	UpdateStatus  tilt.UpdateStatus
	RuntimeStatus tilt.RuntimeStatus
	Overall       Status
}

// Classify derives the row for a single resource.
func Classify(r tilt.UIResource) Row {
	row := Row{
		Name:          r.Name,
		UpdateStatus:  r.Status.UpdateStatus,
		RuntimeStatus: r.Status.RuntimeStatus,
		Overall:       StatusPass,
	}
	if !acceptable.Has(string(row.UpdateStatus)) || !acceptable.Has(string(row.RuntimeStatus)) {
		row.Overall = StatusFail
	}
	return row
}

// Report is the classified resource list, sorted by name.
type Report struct {
	Rows []Row
}

// Evaluate classifies every resource in list. A nil list yields an empty report.
func Evaluate(list *tilt.UIResourceList) *Report {
	report := &Report{}
	if list == nil {
		return report
	}

	report.Rows = make([]Row, 0, len(list.Items))
	for _, item := range list.Items {
		report.Rows = append(report.Rows, Classify(item))
	}
	slices.SortStableFunc(report.Rows, func(a, b Row) int {
		return strings.Compare(a.Name, b.Name)
	})
	return report
}

// Healthy reports whether no row failed. An empty report is healthy.
func (r *Report) Healthy() bool {
	return len(r.Failed()) == 0
}

// Failed returns the names of failing rows in report order.
func (r *Report) Failed() []string {
	var names []string
	for _, row := range r.Rows {
		if row.Overall == StatusFail {
			names = append(names, row.Name)
		}
	}
	return names
}

// Err returns an Unhealthy error naming the failing rows, or nil.
func (r *Report) Err() error {
	if failed := r.Failed(); len(failed) > 0 {
		return errors.Unhealthy(failed)
	}
	return nil
}
