package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/store"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
)

var (
	facultyActor   = models.Actor{Profile: models.ActorFaculty, FacultyID: "F01"}
	otherFaculty   = models.Actor{Profile: models.ActorFaculty, FacultyID: "F02"}
	directionActor = models.Actor{Profile: models.ActorDirection}
)

func newActivityService(t *testing.T, edition models.WorkflowEdition) *ActivityService {
	t.Helper()
	st := store.New(docstore.NewMemory(), store.Config{Edition: edition})
	return NewActivityService(st, nil, nil)
}

func validCreate() CreateActivityRequest {
	return CreateActivityRequest{
		Year:      2026,
		FacultyID: "F01",
		Category:  string(models.CategoryResearch),
		Period:    string(models.PeriodT1),
		Title:     "Projecto de investigação aplicada",
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, appErrors.FromError(err).Code)
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	svc := newActivityService(t, models.EditionValidation)
	ctx := context.Background()

	req := validCreate()
	req.Title = ""
	_, err := svc.Create(ctx, facultyActor, req)
	assertCode(t, err, appErrors.ErrValidation.Code)

	req = validCreate()
	req.Category = "UNKNOWN"
	_, err = svc.Create(ctx, facultyActor, req)
	assertCode(t, err, appErrors.ErrValidation.Code)

	req = validCreate()
	req.StartDate = "15/03/2026"
	_, err = svc.Create(ctx, facultyActor, req)
	assertCode(t, err, appErrors.ErrValidation.Code)
}

func TestCreateActorGuards(t *testing.T) {
	svc := newActivityService(t, models.EditionValidation)
	ctx := context.Background()

	_, err := svc.Create(ctx, directionActor, validCreate())
	assertCode(t, err, appErrors.ErrForbidden.Code)

	_, err = svc.Create(ctx, otherFaculty, validCreate())
	assertCode(t, err, appErrors.ErrForbidden.Code)

	created, err := svc.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)
	assert.Equal(t, models.StatePending, created.Status.State)
}

func TestCreateUnknownFaculty(t *testing.T) {
	svc := newActivityService(t, models.EditionValidation)

	req := validCreate()
	req.FacultyID = "F99"
	actor := models.Actor{Profile: models.ActorFaculty, FacultyID: "F99"}
	_, err := svc.Create(context.Background(), actor, req)
	assertCode(t, err, appErrors.ErrValidation.Code)
}

func TestValidationDecisionsAreDirectionOnly(t *testing.T) {
	svc := newActivityService(t, models.EditionValidation)
	ctx := context.Background()

	created, err := svc.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, facultyActor, created.ID, UpdateStatusRequest{State: string(models.StateValidated)})
	assertCode(t, err, appErrors.ErrForbidden.Code)

	updated, err := svc.UpdateStatus(ctx, directionActor, created.ID, UpdateStatusRequest{
		State:   string(models.StateRejected),
		Comment: "faltam evidências",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StateRejected, updated.Status.State)
	assert.Equal(t, "faltam evidências", updated.Status.Comment)

	// re-decision is allowed
	updated, err = svc.UpdateStatus(ctx, directionActor, created.ID, UpdateStatusRequest{State: string(models.StateValidated)})
	require.NoError(t, err)
	assert.Equal(t, models.StateValidated, updated.Status.State)
}

func TestUpdateStatusRejectsForeignEditionState(t *testing.T) {
	svc := newActivityService(t, models.EditionValidation)
	ctx := context.Background()

	created, err := svc.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, directionActor, created.ID, UpdateStatusRequest{State: string(models.StateExecuted)})
	assertCode(t, err, appErrors.ErrInvalidStatus.Code)
}

func TestExecutionTransitions(t *testing.T) {
	svc := newActivityService(t, models.EditionExecution)
	ctx := context.Background()

	created, err := svc.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)
	assert.Equal(t, models.StatePlanned, created.Status.State)

	// another faculty may not touch the record
	_, err = svc.UpdateStatus(ctx, otherFaculty, created.ID, UpdateStatusRequest{State: string(models.StateExecuted)})
	assertCode(t, err, appErrors.ErrForbidden.Code)

	updated, err := svc.UpdateStatus(ctx, facultyActor, created.ID, UpdateStatusRequest{State: string(models.StateCancelled)})
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, updated.Status.State)

	// reopen
	updated, err = svc.UpdateStatus(ctx, facultyActor, created.ID, UpdateStatusRequest{State: string(models.StatePlanned)})
	require.NoError(t, err)
	assert.Equal(t, models.StatePlanned, updated.Status.State)

	updated, err = svc.UpdateStatus(ctx, directionActor, created.ID, UpdateStatusRequest{State: string(models.StateExecuted)})
	require.NoError(t, err)
	assert.Equal(t, models.StateExecuted, updated.Status.State)

	// executed records do not move back
	_, err = svc.UpdateStatus(ctx, directionActor, created.ID, UpdateStatusRequest{State: string(models.StatePlanned)})
	assertCode(t, err, appErrors.ErrConflict.Code)
}

func TestExecutionDateGuards(t *testing.T) {
	ctx := context.Background()

	validation := newActivityService(t, models.EditionValidation)
	created, err := validation.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)
	_, err = validation.UpdateExecutionDate(ctx, facultyActor, created.ID, UpdateExecutionDateRequest{ExecutedOn: "2026-03-15"})
	assertCode(t, err, appErrors.ErrForbidden.Code)

	execution := newActivityService(t, models.EditionExecution)
	created, err = execution.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)

	_, err = execution.UpdateExecutionDate(ctx, otherFaculty, created.ID, UpdateExecutionDateRequest{ExecutedOn: "2026-03-15"})
	assertCode(t, err, appErrors.ErrForbidden.Code)

	updated, err := execution.UpdateExecutionDate(ctx, facultyActor, created.ID, UpdateExecutionDateRequest{ExecutedOn: "2026-03-15"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", updated.Status.ExecutedOn)
}

func TestSetEvidenceOwnership(t *testing.T) {
	svc := newActivityService(t, models.EditionValidation)
	ctx := context.Background()

	created, err := svc.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)

	_, err = svc.SetEvidence(ctx, otherFaculty, created.ID, SetEvidenceRequest{EvidenceLinks: []string{"https://a"}})
	assertCode(t, err, appErrors.ErrForbidden.Code)

	updated, err := svc.SetEvidence(ctx, directionActor, created.ID, SetEvidenceRequest{EvidenceLinks: []string{"", "https://a"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a"}, updated.EvidenceLinks)
}

func TestDeleteEditionRules(t *testing.T) {
	ctx := context.Background()

	execution := newActivityService(t, models.EditionExecution)
	created, err := execution.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)
	err = execution.Delete(ctx, facultyActor, created.ID)
	assertCode(t, err, appErrors.ErrForbidden.Code)

	validation := newActivityService(t, models.EditionValidation)
	created, err = validation.Create(ctx, facultyActor, validCreate())
	require.NoError(t, err)

	err = validation.Delete(ctx, otherFaculty, created.ID)
	assertCode(t, err, appErrors.ErrForbidden.Code)

	require.NoError(t, validation.Delete(ctx, facultyActor, created.ID))
	_, err = validation.Get(ctx, created.ID)
	assertCode(t, err, appErrors.ErrNotFound.Code)

	// deleting an absent record stays a no-op
	require.NoError(t, validation.Delete(ctx, facultyActor, created.ID))
}
