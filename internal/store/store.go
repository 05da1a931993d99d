// Package store owns the persisted document {faculties, activities}.
// Every operation is a full read-modify-write of the document against an
// injected backend: load, mutate a copy, save the whole thing back. A
// store-level mutex serializes writers; there is no partial update and
// no per-record transaction.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/pkg/docstore"
)

// Sentinel errors surfaced to the service layer.
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrEmptyTitle       = errors.New("activity title must not be empty")
	ErrUnknownFaculty   = errors.New("faculty does not exist")
	ErrInvalidState     = errors.New("state not valid for the configured edition")
	ErrCorruptDocument  = errors.New("stored document is corrupt")
)

// Config tunes store behaviour. Zero values get sensible defaults.
type Config struct {
	Edition models.WorkflowEdition
	// ReseedOnCorrupt restores the legacy "silently replace a corrupt
	// document with the seed" behaviour. Off by default: corruption
	// surfaces as ErrCorruptDocument and requires an explicit Reset.
	ReseedOnCorrupt bool
	Logger          *zap.Logger
	Clock           func() time.Time
	NewID           func() string
	// Observer, when set, receives the duration of every operation.
	Observer func(op string, d time.Duration)
}

// Store is the sole owner of the persisted document.
type Store struct {
	backend docstore.Backend
	edition models.WorkflowEdition

	reseedOnCorrupt bool
	logger          *zap.Logger
	clock           func() time.Time
	newID           func() string
	observer        func(op string, d time.Duration)

	mu sync.Mutex // document-level lock, held across load+save
}

// New constructs a Store over the given backend.
func New(backend docstore.Backend, cfg Config) *Store {
	if cfg.Edition == "" {
		cfg.Edition = models.EditionValidation
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Store{
		backend:         backend,
		edition:         cfg.Edition,
		reseedOnCorrupt: cfg.ReseedOnCorrupt,
		logger:          cfg.Logger,
		clock:           cfg.Clock,
		newID:           cfg.NewID,
		observer:        cfg.Observer,
	}
}

// Edition exposes the configured workflow edition.
func (s *Store) Edition() models.WorkflowEdition {
	return s.edition
}

func (s *Store) observe(op string, start time.Time) {
	if s.observer != nil {
		s.observer(op, time.Since(start))
	}
}

// load reads and decodes the full document, seeding on first access.
// Must be called with the lock held.
func (s *Store) load(ctx context.Context) (*models.Document, error) {
	raw, err := s.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			doc := s.seedDocument()
			if err := s.save(ctx, doc); err != nil {
				return nil, err
			}
			s.logger.Info("document seeded on first access")
			return doc, nil
		}
		return nil, fmt.Errorf("load document: %w", err)
	}

	doc := &models.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		if !s.reseedOnCorrupt {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		s.logger.Warn("corrupt document replaced with seed", zap.Error(err))
		doc = s.seedDocument()
		if err := s.save(ctx, doc); err != nil {
			return nil, err
		}
	}
	s.normalize(doc)
	return doc, nil
}

// save serializes and writes the full document back.
func (s *Store) save(ctx context.Context, doc *models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.backend.Save(ctx, raw); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// normalize applies decode-time defaults: an absent status reads as the
// edition's initial state.
func (s *Store) normalize(doc *models.Document) {
	for i := range doc.Activities {
		a := &doc.Activities[i]
		if a.Status.State == "" {
			a.Status = s.edition.NewStatus("")
		}
		if a.Status.Edition == "" {
			a.Status.Edition = s.edition
		}
		if a.EvidenceLinks == nil {
			a.EvidenceLinks = []string{}
		}
	}
}

// Faculties returns all faculty records in insertion order.
func (s *Store) Faculties(ctx context.Context) ([]models.Faculty, error) {
	defer s.observe("faculties", s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Faculty, len(doc.Faculties))
	copy(out, doc.Faculties)
	return out, nil
}

// Activities returns records matching the filter, most recently updated
// first. Ties keep storage order. The result is a fresh slice each call.
func (s *Store) Activities(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error) {
	defer s.observe("activities", s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Activity, 0, len(doc.Activities))
	for _, a := range doc.Activities {
		if filter.Year != 0 && a.Year != filter.Year {
			continue
		}
		if filter.FacultyID != "" && a.FacultyID != filter.FacultyID {
			continue
		}
		links := make([]string, len(a.EvidenceLinks))
		copy(links, a.EvidenceLinks)
		a.EvidenceLinks = links
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (*models.Activity, error) {
	defer s.observe("get", s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range doc.Activities {
		if a.ID == id {
			links := make([]string, len(a.EvidenceLinks))
			copy(links, a.EvidenceLinks)
			a.EvidenceLinks = links
			return &a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrActivityNotFound, id)
}

// Add validates the draft, assigns identity and timestamps, inserts the
// record at the front of the collection, and persists.
func (s *Store) Add(ctx context.Context, draft models.ActivityDraft) (*models.Activity, error) {
	defer s.observe("add", s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(draft.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if _, ok := doc.Faculty(draft.FacultyID); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFaculty, draft.FacultyID)
	}
	if draft.State != "" && !s.edition.ValidState(draft.State) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, draft.State)
	}

	now := s.clock()
	activity := models.Activity{
		ID:            s.newID(),
		Year:          draft.Year,
		FacultyID:     draft.FacultyID,
		Category:      draft.Category,
		Period:        draft.Period,
		Title:         draft.Title,
		Description:   draft.Description,
		StartDate:     draft.StartDate,
		EndDate:       draft.EndDate,
		EvidenceLinks: cleanLinks(draft.EvidenceLinks),
		Status:        s.edition.NewStatus(draft.State),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	doc.Activities = append([]models.Activity{activity}, doc.Activities...)
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateStatus sets a new lifecycle state (and, in the validation
// edition, the reviewer comment) on the identified record.
func (s *Store) UpdateStatus(ctx context.Context, id string, state models.State, comment string) (*models.Activity, error) {
	defer s.observe("update_status", s.clock())
	if !s.edition.ValidState(state) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	return s.mutate(ctx, id, func(a *models.Activity) {
		a.Status.State = state
		if s.edition == models.EditionValidation {
			a.Status.Comment = comment
		}
	})
}

// UpdateExecutionDate records when the activity actually happened.
// An empty date means "unset".
func (s *Store) UpdateExecutionDate(ctx context.Context, id, date string) (*models.Activity, error) {
	defer s.observe("update_execution_date", s.clock())
	return s.mutate(ctx, id, func(a *models.Activity) {
		a.Status.ExecutedOn = date
	})
}

// SetEvidence replaces the evidence collection wholesale, discarding
// blank entries.
func (s *Store) SetEvidence(ctx context.Context, id string, links []string) (*models.Activity, error) {
	defer s.observe("set_evidence", s.clock())
	return s.mutate(ctx, id, func(a *models.Activity) {
		a.EvidenceLinks = cleanLinks(links)
	})
}

// mutate locates a record by id, applies fn, refreshes updatedAt and
// persists. A missing id aborts with ErrActivityNotFound and no effect.
func (s *Store) mutate(ctx context.Context, id string, fn func(*models.Activity)) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Activities {
		if doc.Activities[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrActivityNotFound, id)
	}

	fn(&doc.Activities[idx])
	doc.Activities[idx].UpdatedAt = s.clock()
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	updated := doc.Activities[idx]
	return &updated, nil
}

// Delete removes the matching record. Deleting an absent id is a no-op,
// not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	defer s.observe("delete", s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := doc.Activities[:0]
	for _, a := range doc.Activities {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	doc.Activities = kept
	return s.save(ctx, doc)
}

// Export returns the entire document unmodified.
func (s *Store) Export(ctx context.Context) (*models.Document, error) {
	defer s.observe("export", s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

// Import replaces the stored document with the given one, verbatim.
func (s *Store) Import(ctx context.Context, doc *models.Document) error {
	defer s.observe("import", s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, doc.Clone())
}

// Reset discards all data and reinstates the seed document.
func (s *Store) Reset(ctx context.Context) (*models.Document, error) {
	defer s.observe("reset", s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.seedDocument()
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("document reset to seed data")
	return doc.Clone(), nil
}

func cleanLinks(links []string) []string {
	out := make([]string, 0, len(links))
	for _, link := range links {
		trimmed := strings.TrimSpace(link)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
