package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ucm-dct/sigac-api/internal/dto"
	"github.com/ucm-dct/sigac-api/internal/models"
	"github.com/ucm-dct/sigac-api/internal/store"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
)

type activityStore interface {
	Edition() models.WorkflowEdition
	Faculties(ctx context.Context) ([]models.Faculty, error)
	Activities(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error)
	Get(ctx context.Context, id string) (*models.Activity, error)
	Add(ctx context.Context, draft models.ActivityDraft) (*models.Activity, error)
	UpdateStatus(ctx context.Context, id string, state models.State, comment string) (*models.Activity, error)
	UpdateExecutionDate(ctx context.Context, id, date string) (*models.Activity, error)
	SetEvidence(ctx context.Context, id string, links []string) (*models.Activity, error)
	Delete(ctx context.Context, id string) error
}

// ActivityService applies request validation and actor/edition rules on
// top of the activity store.
type ActivityService struct {
	store     activityStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActivityService constructs the service.
func NewActivityService(st activityStore, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ActivityService{store: st, validator: validate, logger: logger}
	svc.validator.RegisterValidation("activity_category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(models.Category(fl.Field().String()))
	})
	svc.validator.RegisterValidation("activity_period", func(fl validator.FieldLevel) bool {
		return models.ValidPeriod(models.Period(fl.Field().String()))
	})
	return svc
}

// CreateActivityRequest describes the create payload.
type CreateActivityRequest struct {
	Year          int      `json:"year" validate:"required,min=2000,max=2100"`
	FacultyID     string   `json:"facultyId" validate:"required"`
	Category      string   `json:"category" validate:"required,activity_category"`
	Period        string   `json:"period" validate:"required,activity_period"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	StartDate     string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string   `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	EvidenceLinks []string `json:"evidenceLinks"`
}

// UpdateStatusRequest describes a lifecycle transition payload.
type UpdateStatusRequest struct {
	State   string `json:"state" validate:"required"`
	Comment string `json:"comment"`
}

// UpdateExecutionDateRequest describes the execution-date payload. An
// empty date unsets the field.
type UpdateExecutionDateRequest struct {
	ExecutedOn string `json:"executedOn" validate:"omitempty,datetime=2006-01-02"`
}

// SetEvidenceRequest replaces the evidence collection wholesale.
type SetEvidenceRequest struct {
	EvidenceLinks []string `json:"evidenceLinks" validate:"required"`
}

// Edition exposes the configured workflow edition.
func (s *ActivityService) Edition() models.WorkflowEdition {
	return s.store.Edition()
}

// Faculties lists the faculty catalogue.
func (s *ActivityService) Faculties(ctx context.Context) ([]models.Faculty, error) {
	faculties, err := s.store.Faculties(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return faculties, nil
}

// List returns activities matching the filter, most recently updated
// first.
func (s *ActivityService) List(ctx context.Context, filter dto.ActivityListFilter) ([]models.Activity, error) {
	activities, err := s.store.Activities(ctx, models.ActivityFilter{
		Year:      filter.Year,
		FacultyID: filter.FacultyID,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return activities, nil
}

// Get returns a single activity by id.
func (s *ActivityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	activity, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return activity, nil
}

// Create records a new activity. Only faculty staff create records, and
// only for their own faculty when one is declared.
func (s *ActivityService) Create(ctx context.Context, actor models.Actor, req CreateActivityRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid activity payload")
	}
	if actor.Profile != models.ActorFaculty {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only faculty staff record activities")
	}
	if actor.FacultyID != "" && actor.FacultyID != req.FacultyID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "faculty staff record activities for their own faculty only")
	}

	created, err := s.store.Add(ctx, models.ActivityDraft{
		Year:          req.Year,
		FacultyID:     req.FacultyID,
		Category:      models.Category(req.Category),
		Period:        models.Period(req.Period),
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		EvidenceLinks: req.EvidenceLinks,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Info("activity created",
		zap.String("id", created.ID),
		zap.String("facultyId", created.FacultyID),
		zap.Int("year", created.Year))
	return created, nil
}

// UpdateStatus applies a lifecycle transition under the edition's rules.
func (s *ActivityService) UpdateStatus(ctx context.Context, actor models.Actor, id string, req UpdateStatusRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	target := models.State(req.State)
	if !s.store.Edition().ValidState(target) {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatus, "")
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if err := s.authorizeTransition(actor, current, target); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateStatus(ctx, id, target, req.Comment)
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Info("activity status changed",
		zap.String("id", id),
		zap.String("from", string(current.Status.State)),
		zap.String("to", string(target)))
	return updated, nil
}

// authorizeTransition enforces who may move a record and which moves the
// configured edition allows.
func (s *ActivityService) authorizeTransition(actor models.Actor, current *models.Activity, target models.State) error {
	switch s.store.Edition() {
	case models.EditionValidation:
		// decisions, including re-decisions, belong to the direction office
		if !actor.IsDirection() {
			return appErrors.Clone(appErrors.ErrForbidden, "only the direction office validates or rejects activities")
		}
		return nil
	case models.EditionExecution:
		if !actor.IsDirection() && !actor.OwnsFaculty(current.FacultyID) {
			return appErrors.Clone(appErrors.ErrForbidden, "activity belongs to another faculty")
		}
		if !validExecutionTransition(current.Status.State, target) {
			return appErrors.Clone(appErrors.ErrConflict, "transition not allowed from the current state")
		}
		return nil
	default:
		return appErrors.Clone(appErrors.ErrInternal, "unknown workflow edition")
	}
}

func validExecutionTransition(from, to models.State) bool {
	if from == to {
		return true
	}
	switch from {
	case models.StatePlanned:
		return to == models.StateExecuted || to == models.StateCancelled || to == models.StateNotExecuted
	case models.StateCancelled:
		// reopen
		return to == models.StatePlanned
	default:
		return false
	}
}

// UpdateExecutionDate records when an activity actually happened. Only
// meaningful in the execution edition.
func (s *ActivityService) UpdateExecutionDate(ctx context.Context, actor models.Actor, id string, req UpdateExecutionDateRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid execution date payload")
	}
	if s.store.Edition() != models.EditionExecution {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "execution dates are tracked in the execution edition only")
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if !actor.IsDirection() && !actor.OwnsFaculty(current.FacultyID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "activity belongs to another faculty")
	}

	updated, err := s.store.UpdateExecutionDate(ctx, id, req.ExecutedOn)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return updated, nil
}

// SetEvidence replaces an activity's evidence links.
func (s *ActivityService) SetEvidence(ctx context.Context, actor models.Actor, id string, req SetEvidenceRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evidence payload")
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if !actor.IsDirection() && !actor.OwnsFaculty(current.FacultyID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "activity belongs to another faculty")
	}

	updated, err := s.store.SetEvidence(ctx, id, req.EvidenceLinks)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return updated, nil
}

// Delete removes an activity. Allowed in the validation edition only;
// the execution edition keeps history and answers with cancel/reopen.
func (s *ActivityService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if s.store.Edition() != models.EditionValidation {
		return appErrors.Clone(appErrors.ErrForbidden, "records are cancelled, not deleted, in the execution edition")
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrActivityNotFound) {
			// deleting an absent record is a no-op
			return nil
		}
		return mapStoreError(err)
	}
	if !actor.IsDirection() && !actor.OwnsFaculty(current.FacultyID) {
		return appErrors.Clone(appErrors.ErrForbidden, "activity belongs to another faculty")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.logger.Info("activity deleted", zap.String("id", id))
	return nil
}

// mapStoreError translates store sentinels into the API error taxonomy.
func mapStoreError(err error) *appErrors.Error {
	switch {
	case errors.Is(err, store.ErrActivityNotFound):
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "activity not found")
	case errors.Is(err, store.ErrEmptyTitle), errors.Is(err, store.ErrUnknownFaculty):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	case errors.Is(err, store.ErrInvalidState):
		return appErrors.Wrap(err, appErrors.ErrInvalidStatus.Code, appErrors.ErrInvalidStatus.Status, err.Error())
	case errors.Is(err, store.ErrCorruptDocument):
		return appErrors.Wrap(err, appErrors.ErrStateCorrupt.Code, appErrors.ErrStateCorrupt.Status, appErrors.ErrStateCorrupt.Message)
	default:
		return appErrors.FromError(err)
	}
}
