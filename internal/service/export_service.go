package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/usm-dti/event-tracker-api/internal/models"
	appErrors "github.com/usm-dti/event-tracker-api/pkg/errors"
	"github.com/usm-dti/event-tracker-api/pkg/export"
	"github.com/usm-dti/event-tracker-api/pkg/jobs"
	"github.com/usm-dti/event-tracker-api/pkg/storage"
)

var exportHeaders = []string{
	"Título", "Descripción", "Sede", "Categoría", "Público",
	"Unidad organizadora", "Departamento", "Fecha inicio", "Fecha fin",
	"Hora inicio", "Hora fin", "Estado",
}

// ExportService renders event listings to CSV or PDF asynchronously. Jobs are
// tracked in memory; completed files are served through signed, expiring
// download tokens and swept after the signing TTL.
type ExportService struct {
	events *EventService
	store  *storage.LocalStorage
	signer *storage.SignedURLSigner
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	metrics *MetricsService

	queue *jobs.Queue

	mu       sync.RWMutex
	jobsByID map[string]*models.ExportJob
}

// NewExportService constructs the service. Call AttachQueue before enqueueing.
// metrics may be nil.
func NewExportService(events *EventService, store *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger, metrics *MetricsService) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		events:   events,
		store:    store,
		signer:   signer,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		metrics:  metrics,
		jobsByID: make(map[string]*models.ExportJob),
	}
}

// AttachQueue wires the background queue that will run HandleJob.
func (s *ExportService) AttachQueue(queue *jobs.Queue) {
	s.queue = queue
}

// CreateJob registers and enqueues a new export.
func (s *ExportService) CreateJob(format models.ExportFormat, filters models.FilterCriteria, createdBy string) (*models.ExportJob, error) {
	if format != models.ExportFormatCSV && format != models.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export queue not running")
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		Format:    format,
		Filters:   filters,
		Status:    models.ExportStatusQueued,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobsByID[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "export"}); err != nil {
		s.failJob(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}
	return s.snapshot(job.ID), nil
}

// GetJob returns the job state plus, when completed, a signed download token.
func (s *ExportService) GetJob(id string) (*models.ExportJob, string, error) {
	job := s.snapshot(id)
	if job == nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	if job.Status != models.ExportStatusCompleted {
		return job, "", nil
	}
	token, _, err := s.signer.Generate(job.ID, job.FilePath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}
	return job, token, nil
}

// HandleJob renders the export. It is the queue handler; retryable failures
// are surfaced as returned errors.
func (s *ExportService) HandleJob(ctx context.Context, queued jobs.Job) error {
	job := s.transition(queued.ID, models.ExportStatusProcessing)
	if job == nil {
		return nil
	}

	events, err := s.events.List(ctx, job.Filters)
	if err != nil {
		s.failJob(job.ID, err)
		return err
	}

	listing := buildListing(events)
	var data []byte
	switch job.Format {
	case models.ExportFormatPDF:
		data, err = s.pdf.Render(listing, "Listado de eventos")
	default:
		data, err = s.csv.Render(listing)
	}
	if err != nil {
		s.failJob(job.ID, err)
		return err
	}

	filename := fmt.Sprintf("eventos-%s-%s.%s", time.Now().UTC().Format("20060102-150405"), job.ID[:8], job.Format)
	relPath, err := s.store.Save(filename, data)
	if err != nil {
		s.failJob(job.ID, err)
		return err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	if stored, ok := s.jobsByID[job.ID]; ok {
		stored.Status = models.ExportStatusCompleted
		stored.FilePath = relPath
		stored.Filename = filename
		stored.FinishedAt = &now
	}
	s.mu.Unlock()

	s.metrics.RecordExport(true)
	s.logger.Info("export completed",
		zap.String("job_id", job.ID),
		zap.String("format", string(job.Format)),
		zap.Int("rows", len(events)),
	)
	return nil
}

// Download validates the token and opens the exported file.
func (s *ExportService) Download(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}
	job := s.snapshot(jobID)
	if job == nil || job.Status != models.ExportStatusCompleted || job.FilePath != relPath {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export not available")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file missing")
	}
	return file, job.Filename, nil
}

// RunCleanup periodically removes files older than ttl, and forgets their
// jobs. Blocks until ctx is done.
func (s *ExportService) RunCleanup(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.store.CleanupOlderThan(ttl)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(deleted) == 0 {
				continue
			}
			removed := make(map[string]struct{}, len(deleted))
			for _, name := range deleted {
				removed[name] = struct{}{}
			}
			s.mu.Lock()
			for id, job := range s.jobsByID {
				if _, gone := removed[job.FilePath]; gone {
					delete(s.jobsByID, id)
				}
			}
			s.mu.Unlock()
			s.logger.Info("export cleanup", zap.Int("deleted", len(deleted)))
		}
	}
}

func (s *ExportService) snapshot(id string) *models.ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobsByID[id]
	if !ok {
		return nil
	}
	snap := *job
	return &snap
}

func (s *ExportService) transition(id string, status models.ExportStatus) *models.ExportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobsByID[id]
	if !ok {
		return nil
	}
	job.Status = status
	snap := *job
	return &snap
}

func (s *ExportService) failJob(id string, err error) {
	s.metrics.RecordExport(false)
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobsByID[id]; ok {
		job.Status = models.ExportStatusFailed
		job.ErrorMessage = err.Error()
		job.FinishedAt = &now
	}
}

func buildListing(events []models.Event) export.Listing {
	rows := make([]map[string]string, len(events))
	for i, e := range events {
		rows[i] = map[string]string{
			"Título":              e.Title,
			"Descripción":         e.Description,
			"Sede":                e.Campus,
			"Categoría":           e.Category,
			"Público":             e.Public,
			"Unidad organizadora": e.OrganizerUnit,
			"Departamento":        e.SpecificDepartment,
			"Fecha inicio":        e.StartDate,
			"Fecha fin":           e.EndDate,
			"Hora inicio":         e.StartTime,
			"Hora fin":            e.EndTime,
			"Estado":              e.Status,
		}
	}
	return export.Listing{Headers: exportHeaders, Rows: rows}
}
