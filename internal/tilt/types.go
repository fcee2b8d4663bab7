package tilt

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// UpdateStatus is the build/update state Tilt reports for a resource.
type UpdateStatus string

const (
	UpdateStatusOK            UpdateStatus = "ok"
	UpdateStatusPending       UpdateStatus = "pending"
	UpdateStatusInProgress    UpdateStatus = "in_progress"
	UpdateStatusError         UpdateStatus = "error"
	UpdateStatusNotApplicable UpdateStatus = "not_applicable"
	UpdateStatusNone          UpdateStatus = "none"
)

// RuntimeStatus is the runtime state Tilt reports for a resource.
type RuntimeStatus string

const (
	RuntimeStatusUnknown       RuntimeStatus = "unknown"
	RuntimeStatusOK            RuntimeStatus = "ok"
	RuntimeStatusPending       RuntimeStatus = "pending"
	RuntimeStatusError         RuntimeStatus = "error"
	RuntimeStatusNotApplicable RuntimeStatus = "not_applicable"
)

// UIResourceList is the payload of `tilt get uiresources -o=json`.
type UIResourceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	Items []UIResource `json:"items"`
}

// UIResource is a single resource as shown in the Tilt UI.
type UIResource struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Status UIResourceStatus `json:"status,omitempty"`
}

// UIResourceStatus holds the fields of a resource status this CLI reads.
// Unknown fields in the payload are ignored.
type UIResourceStatus struct {
	UpdateStatus  UpdateStatus     `json:"updateStatus,omitempty"`
	RuntimeStatus RuntimeStatus    `json:"runtimeStatus,omitempty"`
	EndpointLinks []UIResourceLink `json:"endpointLinks,omitempty"`
}

// UIResourceLink is a link the resource exposes in the UI.
type UIResourceLink struct {
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
}
