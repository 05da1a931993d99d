package models

import "time"

// ReportFormat selects the rendition of a generated report.
type ReportFormat string

const (
	ReportFormatHTML ReportFormat = "HTML"
	ReportFormatCSV  ReportFormat = "CSV"
	ReportFormatPDF  ReportFormat = "PDF"
)

// ValidReportFormat reports whether f is a supported format.
func ValidReportFormat(f ReportFormat) bool {
	switch f {
	case ReportFormatHTML, ReportFormatCSV, ReportFormatPDF:
		return true
	}
	return false
}

// ReportStatus tracks an asynchronous report job.
type ReportStatus string

const (
	ReportStatusQueued    ReportStatus = "QUEUED"
	ReportStatusRunning   ReportStatus = "RUNNING"
	ReportStatusCompleted ReportStatus = "COMPLETED"
	ReportStatusFailed    ReportStatus = "FAILED"
)

// ReportParams scope a report to a year plus optional period, faculty
// and state filters. Period ANNUAL (or empty) means the whole year.
type ReportParams struct {
	Year      int          `json:"year"`
	Period    Period       `json:"period,omitempty"`
	FacultyID string       `json:"faculty_id,omitempty"`
	State     State        `json:"state,omitempty"`
	Format    ReportFormat `json:"format"`
}

// ReportJob is one queued report generation request.
type ReportJob struct {
	ID           string       `json:"id"`
	Params       ReportParams `json:"params"`
	Status       ReportStatus `json:"status"`
	ResultPath   string       `json:"-"`
	ResultURL    string       `json:"result_url,omitempty"`
	ErrorMessage string       `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
}

// FacultySummary aggregates activity counts for the monitoring table.
type FacultySummary struct {
	FacultyID   string        `json:"faculty_id"`
	FacultyName string        `json:"faculty_name"`
	Total       int           `json:"total"`
	ByState     map[State]int `json:"by_state"`
}
