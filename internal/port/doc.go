// Package port derives the ports a Tilt instance exposes.
//
// The Tilt web UI always listens on TiltPort. Every resource endpoint link
// of the form http://0.0.0.0:<port>/ adds another port named after its
// resource. Ports are unique; a port claimed twice keeps its first name.
// Names are made unique by suffixing -2, -3, and so on.
//
//	ports := port.Exposed(list)
//	// [{frontend 3000} {tilt 10350}]
package port
