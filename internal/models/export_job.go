package models

import "time"

// ExportFormat identifies a rendering target.
type ExportFormat string

// Supported export formats.
const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus is the lifecycle state of an export job.
type ExportStatus string

// Export job states.
const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusCompleted  ExportStatus = "COMPLETED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob tracks one asynchronous listing export. Jobs are ephemeral and
// held in memory; the rendered file lives under the exports directory until
// the TTL sweep removes it.
type ExportJob struct {
	ID           string         `json:"id"`
	Format       ExportFormat   `json:"format"`
	Filters      FilterCriteria `json:"filters"`
	Status       ExportStatus   `json:"status"`
	FilePath     string         `json:"-"`
	Filename     string         `json:"filename,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedBy    string         `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
}
