package port

import (
	"fmt"
	"slices"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/tilt"
)

// TiltPort is the port of the Tilt web UI and API server.
const (
	TiltPort     = 10350
	TiltPortName = "tilt"
)

// Port is a named port exposed by the Tilt instance.
type Port struct {
	Name string
	Port int32
}

// allocator hands out unique names and ports.
type allocator struct {
	ports []Port
	names map[string]bool
	taken map[int32]bool
}

func (a *allocator) add(name string, port int32) {
	if a.taken[port] {
		return
	}

	candidate := name
	for i := 2; a.names[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d", name, i)
	}

	a.ports = append(a.ports, Port{Name: candidate, Port: port})
	a.names[candidate] = true
	a.taken[port] = true
}

// ParseEndpoint extracts the port from a link of the form
// http://0.0.0.0:<port>/. It returns false for any other link.
func ParseEndpoint(url string) (int32, bool) {
	var port int32
	if _, err := fmt.Sscanf(url, "http://0.0.0.0:%d/", &port); err != nil || port <= 0 {
		return 0, false
	}
	return port, true
}

// Exposed returns the ports exposed by the Tilt instance, sorted by port.
func Exposed(list *tilt.UIResourceList) []Port {
	a := &allocator{
		names: make(map[string]bool),
		taken: make(map[int32]bool),
	}
	a.add(TiltPortName, TiltPort)

	if list != nil {
		for _, r := range list.Items {
			for _, link := range r.Status.EndpointLinks {
				if p, ok := ParseEndpoint(link.URL); ok {
					a.add(r.Name, p)
				}
			}
		}
	}

	slices.SortFunc(a.ports, func(x, y Port) int {
		return int(x.Port) - int(y.Port)
	})
	return a.ports
}
