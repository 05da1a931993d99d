package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/store"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
)

func newDocumentService(t *testing.T) (*DocumentService, *store.Store) {
	t.Helper()
	st := store.New(docstore.NewMemory(), store.Config{Edition: models.EditionValidation})
	return NewDocumentService(st, nil), st
}

func TestDocumentExportIsPrettyJSON(t *testing.T) {
	svc, _ := newDocumentService(t)

	body, err := svc.Export(context.Background())
	require.NoError(t, err)

	var doc models.Document
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Len(t, doc.Faculties, 9)
	assert.Contains(t, string(body), "\n  ")
}

func TestDocumentImportRoundTrip(t *testing.T) {
	svc, st := newDocumentService(t)
	ctx := context.Background()

	_, err := st.Add(ctx, models.ActivityDraft{
		Year:      2026,
		FacultyID: "F01",
		Category:  models.CategoryResearch,
		Period:    models.PeriodT1,
		Title:     "Actividade exportada",
	})
	require.NoError(t, err)

	body, err := svc.Export(ctx)
	require.NoError(t, err)

	// wipe and restore
	_, err = st.Reset(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Import(ctx, body))

	restored, err := st.Activities(ctx, models.ActivityFilter{})
	require.NoError(t, err)
	titles := make([]string, len(restored))
	for i, a := range restored {
		titles[i] = a.Title
	}
	assert.Contains(t, titles, "Actividade exportada")
}

func TestDocumentImportRejectsGarbage(t *testing.T) {
	svc, _ := newDocumentService(t)
	ctx := context.Background()

	err := svc.Import(ctx, []byte("{not json"))
	assertCode(t, err, appErrors.ErrValidation.Code)

	err = svc.Import(ctx, []byte(`{"faculties":[],"activities":[]}`))
	assertCode(t, err, appErrors.ErrValidation.Code)
}

func TestDocumentResetDirectionOnly(t *testing.T) {
	svc, _ := newDocumentService(t)
	ctx := context.Background()

	_, err := svc.Reset(ctx, facultyActor)
	assertCode(t, err, appErrors.ErrForbidden.Code)

	doc, err := svc.Reset(ctx, directionActor)
	require.NoError(t, err)
	assert.Len(t, doc.Faculties, 9)
}
