package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/store"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
)

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	st := store.New(docstore.NewMemory(), store.Config{Edition: models.EditionValidation})
	activities := NewActivityService(st, nil, nil)
	dashboard := NewDashboardService(st, nil)

	f02 := models.Actor{Profile: models.ActorFaculty, FacultyID: "F02"}
	req := validCreate()
	req.FacultyID = "F02"
	created, err := activities.Create(ctx, f02, req)
	require.NoError(t, err)
	_, err = activities.UpdateStatus(ctx, directionActor, created.ID, UpdateStatusRequest{State: string(models.StateValidated)})
	require.NoError(t, err)

	req = validCreate()
	req.FacultyID = "F02"
	req.Title = "Segunda actividade"
	_, err = activities.Create(ctx, f02, req)
	require.NoError(t, err)

	summary, err := dashboard.Summary(ctx, 2026)
	require.NoError(t, err)

	assert.Equal(t, 2026, summary.Year)
	// seed carries two 2026 activities besides the two created here
	assert.Equal(t, 4, summary.Total)
	assert.Len(t, summary.Faculties, 9)
	assert.Equal(t, 1, summary.ByState[models.StateValidated])
	assert.Equal(t, 3, summary.ByState[models.StatePending])

	var f02Summary *models.FacultySummary
	for i := range summary.Faculties {
		if summary.Faculties[i].FacultyID == "F02" {
			f02Summary = &summary.Faculties[i]
		}
	}
	require.NotNil(t, f02Summary)
	assert.Equal(t, 2, f02Summary.Total)
	assert.Equal(t, 1, f02Summary.ByState[models.StateValidated])
	assert.Equal(t, 1, f02Summary.ByState[models.StatePending])

	// faculties with no records still appear
	for _, f := range summary.Faculties {
		if f.FacultyID == "F09" {
			assert.Equal(t, 0, f.Total)
		}
	}
}

func TestDashboardSummaryEmptyYear(t *testing.T) {
	st := store.New(docstore.NewMemory(), store.Config{Edition: models.EditionValidation})
	dashboard := NewDashboardService(st, nil)

	summary, err := dashboard.Summary(context.Background(), 1999)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Len(t, summary.Faculties, 9)
}
