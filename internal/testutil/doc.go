// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// JSON payloads of `tilt get uiresources -o=json` are embedded using go:embed:
//
//	fixtures/uiresources_healthy.json    // every resource ok/not_applicable, unsorted
//	fixtures/uiresources_failing.json    // error, pending and missing statuses
//	fixtures/uiresources_empty.json      // no items
//	fixtures/uiresources_endpoints.json  // endpoint links for port derivation
//
// # Executors
//
// NewTiltExecutor wires a system.MockExecutor that answers the uiresources
// query with a fixture and the uisession query with success:
//
//	exec := testutil.NewTiltExecutor(t, testutil.FailingResources)
//	client := tilt.NewClient(exec)
package testutil
