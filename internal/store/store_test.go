package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
)

// testClock hands out strictly increasing timestamps so ordering
// assertions are deterministic.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(t *testing.T, edition models.WorkflowEdition) (*Store, *docstore.Memory) {
	t.Helper()
	backend := docstore.NewMemory()
	clock := &testClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	seq := 0
	s := New(backend, Config{
		Edition: edition,
		Clock:   clock.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("act-%03d", seq)
		},
	})
	return s, backend
}

func draft(title string, year int, facultyID string) models.ActivityDraft {
	return models.ActivityDraft{
		Year:      year,
		FacultyID: facultyID,
		Category:  models.CategoryResearch,
		Period:    models.PeriodT1,
		Title:     title,
	}
}

func TestSeedOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	faculties, err := s.Faculties(ctx)
	require.NoError(t, err)
	require.Len(t, faculties, 9)
	assert.Equal(t, "F01", faculties[0].ID)
	assert.Equal(t, "F09", faculties[8].ID)

	activities, err := s.Activities(ctx, models.ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, activities, 2)
	for _, a := range activities {
		assert.Equal(t, models.StatePending, a.Status.State)
	}
}

func TestAddAssignsIdentityAndDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	created, err := s.Add(ctx, models.ActivityDraft{
		Year:      2026,
		FacultyID: "F01",
		Category:  models.CategoryResearch,
		Period:    models.PeriodT1,
		Title:     "Seminar X",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatePending, created.Status.State)
	assert.Equal(t, []string{}, created.EvidenceLinks)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
}

func TestAddIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		created, err := s.Add(ctx, draft(fmt.Sprintf("Activity %d", i), 2026, "F02"))
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "id %s reused", created.ID)
		seen[created.ID] = true
	}
}

func TestAddValidatesWritePath(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	_, err := s.Add(ctx, draft("   ", 2026, "F01"))
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = s.Add(ctx, draft("Seminar X", 2026, "F99"))
	assert.ErrorIs(t, err, ErrUnknownFaculty)

	bad := draft("Seminar X", 2026, "F01")
	bad.State = models.StateExecuted // execution-edition state in validation edition
	_, err = s.Add(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAddFiltersBlankEvidence(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	d := draft("Seminar X", 2026, "F01")
	d.EvidenceLinks = []string{"", "https://a", "  "}
	created, err := s.Add(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a"}, created.EvidenceLinks)
}

func TestActivitiesYearFilterPartitions(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)
	_, err := s.Reset(ctx) // drop sample records, keep faculties
	require.NoError(t, err)
	for _, a := range mustList(t, s, models.ActivityFilter{}) {
		require.NoError(t, s.Delete(ctx, a.ID))
	}

	years := []int{2025, 2026, 2026, 2027}
	for i, y := range years {
		_, err := s.Add(ctx, draft(fmt.Sprintf("A%d", i), y, "F01"))
		require.NoError(t, err)
	}

	total := 0
	for _, y := range []int{2025, 2026, 2027} {
		matched := mustList(t, s, models.ActivityFilter{Year: y})
		for _, a := range matched {
			assert.Equal(t, y, a.Year)
		}
		total += len(matched)
	}
	assert.Equal(t, len(years), total)
}

func TestActivitiesFacultyAndYearFiltersAreIndependent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	// seeded records live under F01 and F03; use other faculties here
	_, err := s.Add(ctx, draft("A", 2025, "F02"))
	require.NoError(t, err)
	_, err = s.Add(ctx, draft("B", 2026, "F02"))
	require.NoError(t, err)
	_, err = s.Add(ctx, draft("C", 2026, "F04"))
	require.NoError(t, err)

	byFaculty := mustList(t, s, models.ActivityFilter{FacultyID: "F02"})
	assert.Len(t, byFaculty, 2)

	both := mustList(t, s, models.ActivityFilter{Year: 2026, FacultyID: "F02"})
	require.Len(t, both, 1)
	assert.Equal(t, "B", both[0].Title)
}

func TestListingSortedByUpdatedAtDescending(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	first, err := s.Add(ctx, draft("First", 2030, "F01"))
	require.NoError(t, err)
	_, err = s.Add(ctx, draft("Second", 2030, "F01"))
	require.NoError(t, err)

	listed := mustList(t, s, models.ActivityFilter{Year: 2030})
	require.Len(t, listed, 2)
	assert.Equal(t, "Second", listed[0].Title)

	// touching a record moves it to the front of subsequent listings
	_, err = s.UpdateStatus(ctx, first.ID, models.StateValidated, "ok")
	require.NoError(t, err)

	listed = mustList(t, s, models.ActivityFilter{Year: 2030})
	require.Len(t, listed, 2)
	assert.Equal(t, "First", listed[0].Title)
	for i := 1; i < len(listed); i++ {
		assert.False(t, listed[i].UpdatedAt.After(listed[i-1].UpdatedAt))
	}
}

func TestListingReturnsFreshCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	d := draft("Seminar X", 2026, "F01")
	d.EvidenceLinks = []string{"https://a"}
	created, err := s.Add(ctx, d)
	require.NoError(t, err)

	listed := mustList(t, s, models.ActivityFilter{})
	listed[0].Title = "mutated"
	listed[0].EvidenceLinks[0] = "mutated"

	again := mustList(t, s, models.ActivityFilter{})
	found := false
	for _, a := range again {
		if a.ID == created.ID {
			found = true
			assert.Equal(t, "Seminar X", a.Title)
			assert.Equal(t, []string{"https://a"}, a.EvidenceLinks)
		}
	}
	assert.True(t, found)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	created, err := s.Add(ctx, draft("Seminar X", 2026, "F01"))
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	_, err = s.Get(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestUpdateStatusNotFoundLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	before := mustList(t, s, models.ActivityFilter{})
	_, err := s.UpdateStatus(ctx, "missing-id", models.StateValidated, "")
	assert.ErrorIs(t, err, ErrActivityNotFound)
	after := mustList(t, s, models.ActivityFilter{})
	assert.Equal(t, before, after)
}

func TestUpdateStatusSetsCommentInValidationEdition(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	created, err := s.Add(ctx, draft("Seminar X", 2026, "F01"))
	require.NoError(t, err)

	updated, err := s.UpdateStatus(ctx, created.ID, models.StateRejected, "faltam evidências")
	require.NoError(t, err)
	assert.Equal(t, models.StateRejected, updated.Status.State)
	assert.Equal(t, "faltam evidências", updated.Status.Comment)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateStatusRejectsForeignEditionState(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionExecution)

	created, err := s.Add(ctx, draft("Seminar X", 2026, "F01"))
	require.NoError(t, err)
	assert.Equal(t, models.StatePlanned, created.Status.State)

	_, err = s.UpdateStatus(ctx, created.ID, models.StateValidated, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateExecutionDate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionExecution)

	created, err := s.Add(ctx, draft("Seminar X", 2026, "F01"))
	require.NoError(t, err)

	updated, err := s.UpdateExecutionDate(ctx, created.ID, "2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", updated.Status.ExecutedOn)

	// empty string unsets
	updated, err = s.UpdateExecutionDate(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "", updated.Status.ExecutedOn)

	_, err = s.UpdateExecutionDate(ctx, "missing-id", "2026-03-15")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestSetEvidenceReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	d := draft("Seminar X", 2026, "F01")
	d.EvidenceLinks = []string{"https://old"}
	created, err := s.Add(ctx, d)
	require.NoError(t, err)

	updated, err := s.SetEvidence(ctx, created.ID, []string{"", "https://a", "  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a"}, updated.EvidenceLinks)

	_, err = s.SetEvidence(ctx, "missing-id", []string{"https://a"})
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	created, err := s.Add(ctx, draft("Seminar X", 2026, "F01"))
	require.NoError(t, err)
	countBefore := len(mustList(t, s, models.ActivityFilter{}))

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Len(t, mustList(t, s, models.ActivityFilter{}), countBefore-1)

	// second deletion of the same id: no error, no change
	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Len(t, mustList(t, s, models.ActivityFilter{}), countBefore-1)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	_, err := s.Add(ctx, draft("Seminar X", 2026, "F01"))
	require.NoError(t, err)

	exported, err := s.Export(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Import(ctx, exported))
	again, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, exported, again)
}

func TestCorruptDocumentSurfacesError(t *testing.T) {
	ctx := context.Background()
	backend := docstore.NewMemory()
	require.NoError(t, backend.Save(ctx, []byte("{not json")))

	s := New(backend, Config{Edition: models.EditionValidation})
	_, err := s.Activities(ctx, models.ActivityFilter{})
	assert.ErrorIs(t, err, ErrCorruptDocument)

	// explicit reset recovers
	_, err = s.Reset(ctx)
	require.NoError(t, err)
	_, err = s.Activities(ctx, models.ActivityFilter{})
	assert.NoError(t, err)
}

func TestCorruptDocumentReseedsWhenConfigured(t *testing.T) {
	ctx := context.Background()
	backend := docstore.NewMemory()
	require.NoError(t, backend.Save(ctx, []byte("{not json")))

	s := New(backend, Config{Edition: models.EditionValidation, ReseedOnCorrupt: true})
	faculties, err := s.Faculties(ctx)
	require.NoError(t, err)
	assert.Len(t, faculties, 9)
}

func TestResetDiscardsUserData(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, models.EditionValidation)

	_, err := s.Add(ctx, draft("Seminar X", 2026, "F01"))
	require.NoError(t, err)

	doc, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Activities, 2)
	for _, a := range doc.Activities {
		assert.NotEqual(t, "Seminar X", a.Title)
	}
}

func mustList(t *testing.T, s *Store, filter models.ActivityFilter) []models.Activity {
	t.Helper()
	out, err := s.Activities(context.Background(), filter)
	require.NoError(t, err)
	return out
}
