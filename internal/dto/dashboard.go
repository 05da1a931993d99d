package dto

import "github.com/ucm-dct/sigac-api/internal/models"

// DashboardResponse is the direction-office monitoring payload for a year.
type DashboardResponse struct {
	Year      int                     `json:"year"`
	Total     int                     `json:"total"`
	ByState   map[models.State]int    `json:"byState"`
	Faculties []models.FacultySummary `json:"faculties"`
}
