package port

import (
	"encoding/json"
	"reflect"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/testutil"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/tilt"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		url    string
		want   int32
		wantOK bool
	}{
		{"http://0.0.0.0:8080/", 8080, true},
		{"http://0.0.0.0:1/", 1, true},
		{"http://0.0.0.0:0/", 0, false},
		{"http://localhost:8080/", 0, false},
		{"https://0.0.0.0:8080/", 0, false},
		{"http://0.0.0.0:abc/", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := ParseEndpoint(tt.url)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseEndpoint(%q) = %d, %v, want %d, %v", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExposed_NilList(t *testing.T) {
	got := Exposed(nil)
	want := []Port{{Name: "tilt", Port: 10350}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Exposed(nil) = %v, want %v", got, want)
	}
}

func TestExposed_Fixture(t *testing.T) {
	var list tilt.UIResourceList
	if err := json.Unmarshal(testutil.MustFixture(t, testutil.EndpointsResources), &list); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	got := Exposed(&list)
	want := []Port{
		{Name: "frontend", Port: 3000},
		{Name: "frontend-2", Port: 3001},
		{Name: "tilt-2", Port: 9000},
		{Name: "tilt", Port: 10350},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Exposed() = %v, want %v", got, want)
	}
}

func TestExposed_TiltPortNotReassigned(t *testing.T) {
	list := &tilt.UIResourceList{Items: []tilt.UIResource{
		{
			ObjectMeta: metav1.ObjectMeta{Name: "ui"},
			Status: tilt.UIResourceStatus{EndpointLinks: []tilt.UIResourceLink{
				{URL: "http://0.0.0.0:10350/"},
			}},
		},
	}}

	got := Exposed(list)
	want := []Port{{Name: "tilt", Port: 10350}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Exposed() = %v, want %v", got, want)
	}
}

func TestExposed_NameSuffixes(t *testing.T) {
	links := []tilt.UIResourceLink{
		{URL: "http://0.0.0.0:8001/"},
		{URL: "http://0.0.0.0:8002/"},
		{URL: "http://0.0.0.0:8003/"},
	}
	list := &tilt.UIResourceList{Items: []tilt.UIResource{
		{ObjectMeta: metav1.ObjectMeta{Name: "svc"}, Status: tilt.UIResourceStatus{EndpointLinks: links}},
	}}

	var names []string
	for _, p := range Exposed(list) {
		names = append(names, p.Name)
	}
	want := []string{"svc", "svc-2", "svc-3", "tilt"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}
