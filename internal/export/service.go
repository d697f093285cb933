package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cvgen-backend/cv/model"
	"cvgen-backend/cv/render"
	"cvgen-backend/cv/style"
	"cvgen-backend/internal/exports"
	"cvgen-backend/internal/shared/metrics"
	"cvgen-backend/internal/shared/storage/object"
	"cvgen-backend/internal/shared/telemetry"
	"cvgen-backend/internal/shared/util"
)

// Export formats.
const (
	FormatPreview = "preview"
	FormatPrint   = "print"
	FormatWord    = "word"
	FormatPDF     = "pdf"
)

const (
	mimeHTML = "text/html; charset=utf-8"
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrSuperseded indicates a newer export attempt replaced this one.
var ErrSuperseded = fmt.Errorf("export superseded by a newer attempt")

// Aggregator assembles the full CV model for a subject.
type Aggregator interface {
	Aggregate(ctx context.Context, subjectID string) (*model.AggregateModel, error)
}

// Request describes one export attempt.
type Request struct {
	SubjectID  string   `json:"subjectId"`
	Template   string   `json:"template"`
	Format     string   `json:"format"`
	Categories []string `json:"categories"`
}

// Result is the outcome of a successful export.
type Result struct {
	State    State                 `json:"state"`
	FileName string                `json:"fileName,omitempty"`
	MimeType string                `json:"mimeType,omitempty"`
	ExportID string                `json:"exportId,omitempty"`
	Preview  []*render.PreviewNode `json:"preview,omitempty"`
	HTML     string                `json:"html,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`

	// Data carries the binary artifact for word and pdf exports.
	Data []byte `json:"-"`
}

// Service orchestrates exports: validate, aggregate, render, store, record.
type Service struct {
	Aggregator      Aggregator
	Store           object.ObjectStore
	History         exports.Repo
	PDF             PDFRenderer
	DefaultTemplate style.Template
	Now             func() time.Time

	mu   sync.Mutex
	jobs map[string]*Job
}

// NewService wires an export service.
func NewService(agg Aggregator, store object.ObjectStore, history exports.Repo, pdfRenderer PDFRenderer, defaultTemplate style.Template) *Service {
	return &Service{
		Aggregator:      agg,
		Store:           store,
		History:         history,
		PDF:             pdfRenderer,
		DefaultTemplate: defaultTemplate,
		Now:             time.Now,
		jobs:            make(map[string]*Job),
	}
}

// JobFor returns the export job tracking the given user's attempts.
func (s *Service) JobFor(userID string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[userID]
	if !ok {
		job = NewJob()
		s.jobs[userID] = job
	}
	return job
}

// Export runs one export attempt end to end. Validation failures mark the
// job failed without dispatching any rendering work.
func (s *Service) Export(ctx context.Context, userID string, req Request) (*Result, error) {
	job := s.JobFor(userID)
	gen := job.Begin()
	started := s.Now()

	fail := func(reason string, err error) (*Result, error) {
		job.Fail(gen, reason)
		metrics.IncExportFailed()
		telemetry.Error("export.failed", map[string]any{
			"user_id":    userID,
			"subject_id": req.SubjectID,
			"format":     req.Format,
			"reason":     reason,
		})
		return nil, err
	}

	if strings.TrimSpace(req.SubjectID) == "" {
		return fail("subject id required", fmt.Errorf("%w: subjectId is required", exports.ErrInvalidInput))
	}

	templateName := strings.TrimSpace(req.Template)
	if templateName == "" {
		templateName = string(s.DefaultTemplate)
	}
	cfg, err := style.Resolve(style.Template(templateName))
	if err != nil {
		return fail("unknown template", fmt.Errorf("%w: %v", exports.ErrInvalidInput, err))
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	switch format {
	case FormatPreview, FormatPrint, FormatWord, FormatPDF:
	default:
		return fail("unknown format", fmt.Errorf("%w: unknown format %q", exports.ErrInvalidInput, req.Format))
	}
	if format == FormatPDF && s.PDF == nil {
		return fail("pdf renderer unavailable", fmt.Errorf("%w: pdf export is not configured", exports.ErrInvalidInput))
	}

	categories, err := parseCategories(req.Categories)
	if err != nil {
		return fail("invalid selection", fmt.Errorf("%w: %v", exports.ErrInvalidInput, err))
	}
	if len(categories) == 0 {
		return fail("empty selection", fmt.Errorf("%w: no sections selected", exports.ErrInvalidInput))
	}

	m, err := s.Aggregator.Aggregate(ctx, req.SubjectID)
	if err != nil {
		return fail("model unavailable", fmt.Errorf("aggregate subject %s: %w", req.SubjectID, err))
	}

	if !job.Dispatch(gen) {
		return nil, ErrSuperseded
	}
	metrics.IncExportStarted()

	sel := model.NewSelection(categories)
	result := &Result{Warnings: m.Warnings}

	switch format {
	case FormatPreview:
		result.Preview = render.Preview(m, sel, cfg)
	case FormatPrint:
		result.HTML = render.Print(m, sel, cfg)
		result.MimeType = mimeHTML
	case FormatWord:
		data, err := render.Docx(m, sel, cfg)
		if err != nil {
			return fail("render docx", fmt.Errorf("render docx: %w", err))
		}
		result.Data = data
		result.MimeType = mimeDOCX
		result.FileName = buildFileName(m.Subject.Name, templateName, "docx", s.Now())
	case FormatPDF:
		html := render.Print(m, sel, cfg)
		data, err := s.PDF.RenderHTMLToPDF(ctx, html)
		if err != nil {
			return fail("render pdf", fmt.Errorf("render pdf: %w", err))
		}
		if err := verifyPDF(data, m.Subject.Name); err != nil {
			return fail("verify pdf", err)
		}
		result.Data = data
		result.MimeType = mimePDF
		result.FileName = buildFileName(m.Subject.Name, templateName, "pdf", s.Now())
	}

	if len(result.Data) > 0 {
		exportID, err := s.record(ctx, userID, req.SubjectID, templateName, format, result)
		if err != nil {
			return fail("store artifact", err)
		}
		result.ExportID = exportID
	}

	if !job.Succeed(gen) {
		return nil, ErrSuperseded
	}
	result.State = StateSucceeded

	durationMs := float64(s.Now().Sub(started).Microseconds()) / 1000.0
	metrics.IncExportSucceeded()
	metrics.ObserveExportDurationMs(durationMs)
	telemetry.Info("export.complete", map[string]any{
		"user_id":     userID,
		"subject_id":  req.SubjectID,
		"template":    templateName,
		"format":      format,
		"export_id":   result.ExportID,
		"size_bytes":  len(result.Data),
		"warnings":    len(result.Warnings),
		"duration_ms": durationMs,
	})
	return result, nil
}

// ListHistory returns the stored export records for a user, newest first.
func (s *Service) ListHistory(ctx context.Context, userID string, limit, offset int) ([]exports.CVExport, error) {
	if s.History == nil {
		return []exports.CVExport{}, nil
	}
	return s.History.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) record(ctx context.Context, userID, subjectID, template, format string, result *Result) (string, error) {
	if s.Store == nil || s.History == nil {
		return "", nil
	}
	storageKey, sizeBytes, _, err := s.Store.Save(ctx, userID, result.FileName, bytes.NewReader(result.Data))
	if err != nil {
		return "", fmt.Errorf("save artifact: %w", err)
	}
	record := exports.CVExport{
		ID:         uuid.NewString(),
		UserID:     userID,
		SubjectID:  subjectID,
		Template:   template,
		Format:     format,
		FileName:   result.FileName,
		StorageKey: storageKey,
		MimeType:   result.MimeType,
		SizeBytes:  sizeBytes,
		CreatedAt:  s.Now().UTC(),
	}
	if err := s.History.Create(ctx, record); err != nil {
		return "", fmt.Errorf("record export: %w", err)
	}
	return record.ID, nil
}

func parseCategories(raw []string) ([]model.Category, error) {
	var out []model.Category
	for _, item := range raw {
		c := model.Category(strings.TrimSpace(item))
		if c == "" {
			continue
		}
		if !c.IsValid() {
			return nil, fmt.Errorf("unknown category %q", item)
		}
		out = append(out, c)
	}
	return out, nil
}

// buildFileName produces names like CV_Jane_Doe_academic_2026-08-30.docx.
func buildFileName(subjectName, template, ext string, now time.Time) string {
	name := strings.TrimSpace(subjectName)
	if name == "" {
		name = "CV"
	}
	name = strings.Join(strings.Fields(name), "_")
	fileName := fmt.Sprintf("CV_%s_%s_%s.%s", name, template, now.Format("2006-01-02"), ext)
	if safe, err := util.SanitizeFileName(fileName); err == nil {
		return safe
	}
	return fmt.Sprintf("CV_%s_%s.%s", template, now.Format("2006-01-02"), ext)
}
