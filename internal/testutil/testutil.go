package testutil

import (
	"testing"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/system"
)

// UIResourcesPattern and UISessionPattern are the MockExecutor keys for the
// two tilt queries.
const (
	UIResourcesPattern = "tilt get uiresources"
	UISessionPattern   = "tilt get uisession"
)

// NewTiltExecutor returns a MockExecutor whose `tilt get uiresources` answers
// with the named fixture and whose `tilt get uisession` succeeds.
func NewTiltExecutor(t testing.TB, fixture string) *system.MockExecutor {
	t.Helper()
	exec := system.NewMockExecutor()
	exec.AddResponse(UIResourcesPattern, MustFixture(t, fixture), nil)
	exec.AddResponse(UISessionPattern, []byte("NAME\tCREATED AT\nTilt\t2026-10-19T09:12:40Z\n"), nil)
	return exec
}

// NewDownExecutor returns a MockExecutor on which every tilt query fails
// with err, as when no tilt API server is listening.
func NewDownExecutor(err error) *system.MockExecutor {
	exec := system.NewMockExecutor()
	exec.AddResponse("tilt", nil, err)
	return exec
}
