package testutil

import (
	"embed"
	"testing"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// Fixture names.
const (
	HealthyResources   = "uiresources_healthy.json"
	FailingResources   = "uiresources_failing.json"
	EmptyResources     = "uiresources_empty.json"
	EndpointsResources = "uiresources_endpoints.json"
)

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustFixture loads a fixture or fails the test.
func MustFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("LoadFixture(%q): %v", name, err)
	}
	return data
}
