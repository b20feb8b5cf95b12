// Package report implements template-driven report generation: a
// catalog of templates, a set of interchangeable rendering engines
// and a service dispatching between them.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/heymumford/Rinna/internal/config"
	"github.com/heymumford/Rinna/internal/models"
	"github.com/heymumford/Rinna/internal/storage"
)

// Request describes one report generation.
type Request struct {
	TemplateID string                 `json:"template_id"`
	Data       map[string]interface{} `json:"data"`
	Format     Format                 `json:"format,omitempty"`
	Engine     Engine                 `json:"engine,omitempty"`
	Filename   string                 `json:"filename,omitempty"`
	Save       bool                   `json:"-"`
}

// Result is the outcome record of one rendering attempt.
type Result struct {
	ReportID   string  `json:"report_id"`
	TemplateID string  `json:"template_id"`
	Format     string  `json:"format"`
	Engine     string  `json:"engine"`
	Filename   string  `json:"filename,omitempty"`
	FileKey    string  `json:"file_key,omitempty"`
	SizeBytes  int64   `json:"size_bytes"`
	ElapsedSec float64 `json:"generation_time_seconds"`
	Timestamp  string  `json:"timestamp"`
	Status     string  `json:"status"`
	Error      string  `json:"error,omitempty"`
}

// Succeeded reports whether the attempt produced output.
func (r *Result) Succeeded() bool {
	return r.Status == models.StatusSuccess
}

// Service resolves templates and renderers and delegates the actual
// document work to the selected engine. Renderer instances are
// created lazily and cached, one per engine; when an engine cannot be
// constructed the configured default engine substitutes for it.
type Service struct {
	templates     *TemplateManager
	records       RecordStore
	files         storage.Storage
	defaultEngine Engine
	factory       RendererFactory
	logger        *logrus.Logger

	mu        sync.Mutex
	renderers map[Engine]Renderer
}

// NewService creates a report service.
func NewService(
	cfg config.Config,
	templates *TemplateManager,
	records RecordStore,
	files storage.Storage,
	logger *logrus.Logger,
) (*Service, error) {
	defaultEngine, err := ParseEngine(cfg.Reports.DefaultEngine)
	if err != nil {
		return nil, fmt.Errorf("invalid default engine: %w", err)
	}

	return &Service{
		templates:     templates,
		records:       records,
		files:         files,
		defaultEngine: defaultEngine,
		factory:       NewRenderer,
		logger:        logger,
		renderers:     make(map[Engine]Renderer),
	}, nil
}

// Templates exposes the template catalog.
func (s *Service) Templates() *TemplateManager {
	return s.templates
}

// Record returns the stored record for a report ID.
func (s *Service) Record(ctx context.Context, reportID string) (*models.ReportRecord, error) {
	return s.records.GetByReportID(ctx, reportID)
}

// Open streams the stored output bytes for a record.
func (s *Service) Open(ctx context.Context, record *models.ReportRecord) (io.ReadCloser, error) {
	return s.files.Get(ctx, record.FileKey)
}

// renderer returns the cached renderer for an engine, constructing it
// on first use. When construction fails and the engine is not the
// default, the default engine's renderer substitutes and is cached
// under the requested engine, matching the single-fallback policy.
func (s *Service) renderer(engine Engine) (Renderer, Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.renderers[engine]; ok {
		return r, engine, nil
	}

	r, err := s.factory(engine, s.logger)
	if err == nil {
		s.renderers[engine] = r
		return r, engine, nil
	}

	if engine == s.defaultEngine {
		return nil, engine, err
	}

	s.logger.WithError(err).WithFields(logrus.Fields{
		"engine":   engine,
		"fallback": s.defaultEngine,
	}).Warn("Failed to create renderer, falling back to default engine")

	fallback, ok := s.renderers[s.defaultEngine]
	if !ok {
		fallback, err = s.factory(s.defaultEngine, s.logger)
		if err != nil {
			return nil, engine, fmt.Errorf("default engine %s also unavailable: %w", s.defaultEngine, err)
		}
		s.renderers[s.defaultEngine] = fallback
	}
	s.renderers[engine] = fallback
	return fallback, s.defaultEngine, nil
}

// Generate renders one report. Request-level failures (unknown
// template, no usable engine) return an error; failures inside the
// renderer are captured as an error-status Result instead.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	tmpl := s.templates.Get(req.TemplateID)
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, req.TemplateID)
	}

	engine := tmpl.Engine
	if req.Engine != "" {
		parsed, err := ParseEngine(string(req.Engine))
		if err != nil {
			return nil, err
		}
		engine = parsed
	}

	if req.Format != "" {
		if _, err := ParseFormat(string(req.Format)); err != nil {
			return nil, err
		}
	}

	renderer, engine, err := s.renderer(engine)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = engine.DefaultFormat()
	}

	reportID := uuid.NewString()
	filename := req.Filename
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.%s", req.TemplateID, time.Now().Format("20060102_150405"), format)
	}

	logger := s.logger.WithFields(logrus.Fields{
		"report_id": reportID,
		"template":  req.TemplateID,
		"engine":    engine,
		"format":    format,
	})

	start := time.Now()
	content, renderErr := s.render(ctx, renderer, tmpl, req.Data, format)
	elapsed := time.Since(start)

	result := &Result{
		ReportID:   reportID,
		TemplateID: req.TemplateID,
		Format:     string(format),
		Engine:     string(engine),
		ElapsedSec: elapsed.Seconds(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	if renderErr == nil && req.Save {
		key := s.files.JoinPath("reports", reportID, filename)
		if err := s.files.Save(ctx, key, bytes.NewReader(content)); err != nil {
			renderErr = fmt.Errorf("failed to save report output: %w", err)
		} else {
			result.Filename = filename
			result.FileKey = key
		}
	}

	if renderErr != nil {
		logger.WithError(renderErr).Error("Report generation failed")
		result.Status = models.StatusError
		result.Error = renderErr.Error()
	} else {
		result.Status = models.StatusSuccess
		result.SizeBytes = int64(len(content))
		logger.WithFields(logrus.Fields{
			"size_bytes": result.SizeBytes,
			"elapsed":    elapsed,
		}).Info("Report generated")
	}

	s.record(ctx, result, req.Data, logger)
	return result, nil
}

// render invokes the renderer, converting panics from the underlying
// document libraries into errors.
func (s *Service) render(ctx context.Context, renderer Renderer, tmpl *Template, data map[string]interface{}, format Format) (content []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()
	return renderer.Render(ctx, tmpl, data, format)
}

// record persists the result together with the request payload that
// produced it. Storage problems are logged, not propagated: the
// caller already holds the generated output.
func (s *Service) record(ctx context.Context, result *Result, data map[string]interface{}, logger *logrus.Entry) {
	if s.records == nil {
		return
	}

	rec := &models.ReportRecord{
		ReportID:   result.ReportID,
		TemplateID: result.TemplateID,
		Engine:     result.Engine,
		Format:     result.Format,
		Status:     result.Status,
		FileKey:    result.FileKey,
		SizeBytes:  result.SizeBytes,
		ElapsedSec: result.ElapsedSec,
		Error:      result.Error,
		Data:       models.JSON(data),
	}
	if err := s.records.Create(ctx, rec); err != nil {
		logger.WithError(err).Warn("Failed to persist report record")
	}
}
