package dto

import "github.com/ucm-dct/sigac-api/internal/models"

// ReportFilter captures query parameters shared by the synchronous
// download endpoint and the asynchronous job endpoint.
type ReportFilter struct {
	Year      int
	Period    models.Period
	FacultyID string
	State     models.State
	Format    models.ReportFormat
}

// ReportJobResponse enriches job metadata with a signed download URL
// once the result is available.
type ReportJobResponse struct {
	models.ReportJob
	DownloadURL string `json:"downloadUrl,omitempty"`
}
