package models

// Toast severities.
const (
	ToastInfo    = "info"
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast is a short-lived user-facing notification. It auto-expires after the
// configured TTL unless dismissed earlier by id.
type Toast struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
