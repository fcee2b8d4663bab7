// Package tilt reads status objects from a running Tilt instance.
//
// The CLI does not talk to Tilt's API server directly. It shells out to the
// tilt binary, the same way a Kubernetes exec probe would:
//
//	tilt get uiresources -o=json   // Client.UIResources
//	tilt get uisession             // Client.Session
//
// The JSON payload is decoded into Kubernetes-style list/object types
// (UIResourceList, UIResource) carrying only the status fields this CLI uses.
package tilt
