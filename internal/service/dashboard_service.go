package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ucm-dct/sigac-api/internal/dto"
	"github.com/ucm-dct/sigac-api/internal/models"
)

// DashboardService aggregates per-faculty activity counts for the
// direction-office monitoring table.
type DashboardService struct {
	store  activityStore
	logger *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(st activityStore, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: st, logger: logger}
}

// Summary returns totals per faculty and per state for a year. Every
// faculty appears, including those with no recorded activities.
func (s *DashboardService) Summary(ctx context.Context, year int) (*dto.DashboardResponse, error) {
	faculties, err := s.store.Faculties(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	activities, err := s.store.Activities(ctx, models.ActivityFilter{Year: year})
	if err != nil {
		return nil, mapStoreError(err)
	}

	perFaculty := make(map[string]*models.FacultySummary, len(faculties))
	ordered := make([]*models.FacultySummary, 0, len(faculties))
	for _, f := range faculties {
		summary := &models.FacultySummary{
			FacultyID:   f.ID,
			FacultyName: f.Name,
			ByState:     map[models.State]int{},
		}
		perFaculty[f.ID] = summary
		ordered = append(ordered, summary)
	}

	byState := map[models.State]int{}
	for _, a := range activities {
		byState[a.Status.State]++
		if summary, ok := perFaculty[a.FacultyID]; ok {
			summary.Total++
			summary.ByState[a.Status.State]++
		}
	}

	out := &dto.DashboardResponse{
		Year:      year,
		Total:     len(activities),
		ByState:   byState,
		Faculties: make([]models.FacultySummary, len(ordered)),
	}
	for i, summary := range ordered {
		out.Faculties[i] = *summary
	}
	return out, nil
}
