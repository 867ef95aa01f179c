package domain

import "time"

// Health statuses produced by the client itself. Any other status string
// comes verbatim from the API.
const (
	// HealthUnhealthy is reported when the health check fails in any way.
	HealthUnhealthy = "Unhealthy"

	// HealthUnknown is reported before the first check completes.
	HealthUnknown = "Unknown"
)

// HealthReport is the outcome of one health check.
type HealthReport struct {
	// Status is the API-reported status or one of the client statuses.
	Status string

	// CheckedAt is when the check finished. Zero before the first check.
	CheckedAt time.Time
}

// IsHealthy returns true if the API answered with a usable status.
func (r HealthReport) IsHealthy() bool {
	return r.Status != "" && r.Status != HealthUnhealthy && r.Status != HealthUnknown
}

// TranscriptionStatus is the outcome of the last upload.
type TranscriptionStatus string

const (
	// TranscriptionIdle means nothing was uploaded yet.
	TranscriptionIdle TranscriptionStatus = "idle"

	// TranscriptionSuccess means the API accepted the upload.
	TranscriptionSuccess TranscriptionStatus = "success"

	// TranscriptionError means the upload failed.
	TranscriptionError TranscriptionStatus = "error"
)

// String returns the display label.
func (s TranscriptionStatus) String() string {
	switch s {
	case TranscriptionSuccess:
		return "Success"
	case TranscriptionError:
		return "Error"
	case TranscriptionIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}
