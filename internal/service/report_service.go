package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ucm-dct/sigac-api/internal/dto"
	"github.com/ucm-dct/sigac-api/internal/models"
	appErrors "github.com/ucm-dct/sigac-api/pkg/errors"
	"github.com/ucm-dct/sigac-api/pkg/export"
	"github.com/ucm-dct/sigac-api/pkg/jobs"
)

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type fileStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
}

type downloadSigner interface {
	Generate(jobID, relPath string) (string, time.Time, error)
	Parse(token string) (jobID, relPath string, expiresAt time.Time, err error)
}

type reportMetrics interface {
	RecordReportJob(status string)
}

// ReportService renders activity reports and runs the asynchronous job
// flow: an in-memory registry of jobs processed by a worker queue, with
// results written to local storage behind signed download tokens.
type ReportService struct {
	store       activityStore
	files       fileStore
	signer      downloadSigner
	queue       jobDispatcher
	html        *export.HTMLExporter
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
	institution string
	metrics     reportMetrics

	mu   sync.RWMutex
	jobs map[string]*models.ReportJob
}

// ReportDownload aggregates resolved download data.
type ReportDownload struct {
	File        *os.File
	Filename    string
	ContentType string
	ExpiresAt   time.Time
}

// RenderedReport is a synchronously generated report body.
type RenderedReport struct {
	Filename    string
	ContentType string
	Body        []byte
}

// NewReportService constructs the report service. The queue is attached
// separately because its handler is this service's ProcessJob.
func NewReportService(st activityStore, files fileStore, signer downloadSigner, logger *zap.Logger, institution string) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:       st,
		files:       files,
		signer:      signer,
		html:        export.NewHTMLExporter(),
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
		institution: institution,
		jobs:        map[string]*models.ReportJob{},
	}
}

// SetQueue attaches the dispatcher that feeds ProcessJob.
func (s *ReportService) SetQueue(q jobDispatcher) {
	s.queue = q
}

// SetMetrics attaches the collector counting terminal job statuses.
func (s *ReportService) SetMetrics(m reportMetrics) {
	s.metrics = m
}

// Render generates a report synchronously.
func (s *ReportService) Render(ctx context.Context, filter dto.ReportFilter) (*RenderedReport, error) {
	params, err := s.normalize(filter)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, params)
}

// CreateJob registers an asynchronous report job and enqueues it.
func (s *ReportService) CreateJob(ctx context.Context, filter dto.ReportFilter) (*dto.ReportJobResponse, error) {
	params, err := s.normalize(filter)
	if err != nil {
		return nil, err
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "report queue not running")
	}

	job := &models.ReportJob{
		ID:        uuid.NewString(),
		Params:    params,
		Status:    models.ReportStatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "report"}); err != nil {
		s.failJob(job.ID, "failed to enqueue job")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue report job")
	}
	return s.jobResponse(job), nil
}

// GetJob exposes job metadata to clients.
func (s *ReportService) GetJob(_ context.Context, id string) (*dto.ReportJobResponse, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	return s.jobResponse(job), nil
}

// ProcessJob is the queue handler: it renders the report and stores the
// result behind a signed token.
func (s *ReportService) ProcessJob(ctx context.Context, job jobs.Job) error {
	s.mu.Lock()
	entry, ok := s.jobs[job.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("unknown report job %q", job.ID)
	}
	entry.Status = models.ReportStatusRunning
	params := entry.Params
	s.mu.Unlock()

	rendered, err := s.render(ctx, params)
	if err != nil {
		s.failJob(job.ID, err.Error())
		return err
	}

	filename := fmt.Sprintf("%s-%s", job.ID, rendered.Filename)
	if _, err := s.files.Save(filename, rendered.Body); err != nil {
		s.failJob(job.ID, "failed to store report file")
		return err
	}
	token, _, err := s.signer.Generate(job.ID, filename)
	if err != nil {
		s.failJob(job.ID, "failed to sign download token")
		return err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	entry.Status = models.ReportStatusCompleted
	entry.ResultPath = filename
	entry.ResultURL = "/api/v1/reports/download/" + token
	entry.FinishedAt = &now
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordReportJob(string(models.ReportStatusCompleted))
	}
	s.logger.Info("report job completed",
		zap.String("job_id", job.ID),
		zap.String("format", string(params.Format)),
		zap.Int("year", params.Year))
	return nil
}

// ResolveDownload validates a token and opens the stored report file.
func (s *ReportService) ResolveDownload(_ context.Context, token string) (*ReportDownload, error) {
	jobID, relPath, expiresAt, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}

	s.mu.RLock()
	job, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	if job.Status != models.ReportStatusCompleted || job.ResultPath != relPath {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "report not ready")
	}

	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open report file")
	}
	return &ReportDownload{
		File:        file,
		Filename:    strings.TrimPrefix(filepath.Base(relPath), jobID+"-"),
		ContentType: contentTypeFor(job.Params.Format),
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *ReportService) jobResponse(job *models.ReportJob) *dto.ReportJobResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &dto.ReportJobResponse{ReportJob: *job, DownloadURL: job.ResultURL}
}

func (s *ReportService) failJob(id, message string) {
	now := time.Now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[id]; ok {
		job.Status = models.ReportStatusFailed
		job.ErrorMessage = message
		job.FinishedAt = &now
	}
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.RecordReportJob(string(models.ReportStatusFailed))
	}
}

// normalize validates the filter and fills defaults.
func (s *ReportService) normalize(filter dto.ReportFilter) (models.ReportParams, error) {
	if filter.Year <= 0 {
		return models.ReportParams{}, appErrors.Clone(appErrors.ErrValidation, "year is required")
	}
	if filter.Format == "" {
		filter.Format = models.ReportFormatHTML
	}
	if !models.ValidReportFormat(filter.Format) {
		return models.ReportParams{}, appErrors.Clone(appErrors.ErrValidation, "unsupported report format")
	}
	if filter.Period != "" && !models.ValidPeriod(filter.Period) {
		return models.ReportParams{}, appErrors.Clone(appErrors.ErrValidation, "unsupported period")
	}
	if filter.State != "" && !s.store.Edition().ValidState(filter.State) {
		return models.ReportParams{}, appErrors.Clone(appErrors.ErrInvalidStatus, "")
	}
	return models.ReportParams{
		Year:      filter.Year,
		Period:    filter.Period,
		FacultyID: filter.FacultyID,
		State:     filter.State,
		Format:    filter.Format,
	}, nil
}

func (s *ReportService) render(ctx context.Context, params models.ReportParams) (*RenderedReport, error) {
	faculties, err := s.store.Faculties(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	activities, err := s.store.Activities(ctx, models.ActivityFilter{Year: params.Year, FacultyID: params.FacultyID})
	if err != nil {
		return nil, mapStoreError(err)
	}

	names := make(map[string]string, len(faculties))
	for _, f := range faculties {
		names[f.ID] = f.Name
	}

	matched := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if params.Period != "" && params.Period != models.PeriodAnnual && a.Period != params.Period {
			continue
		}
		if params.State != "" && a.Status.State != params.State {
			continue
		}
		matched = append(matched, a)
	}

	edition := s.store.Edition()
	showExec := edition == models.EditionExecution

	kpis := []export.KPI{{Label: "Total", Value: len(matched)}}
	for _, state := range edition.States() {
		count := 0
		for _, a := range matched {
			if a.Status.State == state {
				count++
			}
		}
		kpis = append(kpis, export.KPI{Label: state.Label(), Value: count})
	}

	subtitle := fmt.Sprintf("Ano %d", params.Year)
	if params.Period != "" && params.Period != models.PeriodAnnual {
		subtitle += " • Período " + string(params.Period)
	}
	if params.FacultyID != "" {
		if name, ok := names[params.FacultyID]; ok {
			subtitle += " • " + name
		}
	}

	base := fmt.Sprintf("relatorio-actividades-%d", params.Year)
	switch params.Format {
	case models.ReportFormatHTML:
		rows := make([]export.HTMLRow, len(matched))
		for i, a := range matched {
			rows[i] = export.HTMLRow{
				Title:         a.Title,
				Category:      a.Category.Label(),
				Period:        a.Period.Label(),
				Faculty:       names[a.FacultyID],
				StartDate:     a.StartDate,
				EndDate:       a.EndDate,
				ExecutionDate: a.Status.ExecutedOn,
				Status:        a.Status.State.Label(),
				EvidenceLinks: a.EvidenceLinks,
			}
		}
		body, err := s.html.Render(export.HTMLReport{
			Institution: s.institution,
			Title:       "Relatório de Actividades Científicas",
			Subtitle:    subtitle,
			ShowExec:    showExec,
			KPIs:        kpis,
			Rows:        rows,
		})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
		}
		return &RenderedReport{Filename: base + ".html", ContentType: "text/html; charset=utf-8", Body: body}, nil
	case models.ReportFormatCSV:
		body, err := s.csv.Render(tabular(matched, names, showExec))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
		}
		return &RenderedReport{Filename: base + ".csv", ContentType: "text/csv", Body: body}, nil
	case models.ReportFormatPDF:
		body, err := s.pdf.Render(tabular(matched, names, showExec), "Relatório de Actividades Científicas — "+subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
		}
		return &RenderedReport{Filename: base + ".pdf", ContentType: "application/pdf", Body: body}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format")
	}
}

// tabular flattens activities for the CSV and PDF renditions.
func tabular(activities []models.Activity, names map[string]string, showExec bool) export.Dataset {
	headers := []string{"Título", "Categoria", "Período", "Faculdade", "Início", "Fim"}
	if showExec {
		headers = append(headers, "Execução")
	}
	headers = append(headers, "Estado", "Evidências")

	rows := make([]map[string]string, len(activities))
	for i, a := range activities {
		row := map[string]string{
			"Título":     a.Title,
			"Categoria":  a.Category.Label(),
			"Período":    a.Period.Label(),
			"Faculdade":  names[a.FacultyID],
			"Início":     a.StartDate,
			"Fim":        a.EndDate,
			"Estado":     a.Status.State.Label(),
			"Evidências": strings.Join(a.EvidenceLinks, " "),
		}
		if showExec {
			row["Execução"] = a.Status.ExecutedOn
		}
		rows[i] = row
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func contentTypeFor(format models.ReportFormat) string {
	switch format {
	case models.ReportFormatCSV:
		return "text/csv"
	case models.ReportFormatPDF:
		return "application/pdf"
	default:
		return "text/html; charset=utf-8"
	}
}
