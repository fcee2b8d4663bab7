// Package health classifies Tilt resources and renders the pass/fail report.
//
// # Classification
//
// Each UI resource becomes a Row. A row is StatusFail when either its update
// status or its runtime status is something other than "ok" or
// "not_applicable"; otherwise it is StatusPass. A missing status field is an
// empty string and therefore fails.
//
//	report := health.Evaluate(list)   // rows sorted by resource name
//	report.Healthy()                  // false if any row failed
//	report.Err()                      // errors.Unhealthy(...) or nil
//
// # Table
//
// TableWriter prints the report as fixed-width columns, 20 cells wide:
//
//	Name                Update              Runtime             Overall
//	api                 error               ok                  FAIL
//
// On a colour terminal the Overall cell is coloured; padding is computed on
// visible width so columns stay aligned.
package health
