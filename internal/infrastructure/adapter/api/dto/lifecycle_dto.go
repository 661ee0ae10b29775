package dto

// StatusResponse is the placeholder body returned while a route is gated
type StatusResponse struct {
	Status string `json:"status"`
}

// LifecycleResponse describes the flag client lifecycle
type LifecycleResponse struct {
	State    string `json:"state"`
	Ready    bool   `json:"ready"`
	SDKLevel string `json:"sdkLevel,omitempty"`
	Error    string `json:"error,omitempty"`
}
