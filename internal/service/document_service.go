package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ucm-dct/sigac-api/internal/models"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
)

type documentStore interface {
	Export(ctx context.Context) (*models.Document, error)
	Import(ctx context.Context, doc *models.Document) error
	Reset(ctx context.Context) (*models.Document, error)
}

// DocumentService exposes whole-document operations: backup export,
// restore, and reset to seed data.
type DocumentService struct {
	store  documentStore
	logger *zap.Logger
}

// NewDocumentService constructs the service.
func NewDocumentService(st documentStore, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{store: st, logger: logger}
}

// Export returns the whole document as pretty-printed JSON, suitable
// for download as a backup file.
func (s *DocumentService) Export(ctx context.Context) ([]byte, error) {
	doc, err := s.store.Export(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode document")
	}
	return body, nil
}

// Import replaces the stored document with a previously exported one.
func (s *DocumentService) Import(ctx context.Context, body []byte) error {
	var doc models.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "document is not valid JSON")
	}
	if len(doc.Faculties) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "document has no faculties")
	}
	if err := s.store.Import(ctx, &doc); err != nil {
		return mapStoreError(err)
	}
	s.logger.Info("document imported",
		zap.Int("faculties", len(doc.Faculties)),
		zap.Int("activities", len(doc.Activities)))
	return nil
}

// Reset discards all stored data and restores the seed document. Only
// the direction office may reset.
func (s *DocumentService) Reset(ctx context.Context, actor models.Actor) (*models.Document, error) {
	if !actor.IsDirection() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the direction office resets the document")
	}
	doc, err := s.store.Reset(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Warn("document reset to seed data")
	return doc, nil
}
