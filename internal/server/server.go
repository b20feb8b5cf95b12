package server

import (
	"context"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/heymumford/Rinna/internal/config"
	"github.com/heymumford/Rinna/internal/report"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	service *report.Service
	version string
	logger  *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, reportService *report.Service, logger *logrus.Logger) *Server {
	e := echo.New()
	e.Debug = cfg.Server.Debug
	e.HideBanner = true

	// Middleware
	e.Use(middleware.LoggerWithConfig(requestLoggerConfig(cfg.Server.Debug)))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	server := &Server{
		echo:    e,
		service: reportService,
		version: cfg.Project.Version,
		logger:  logger,
	}

	server.setupRoutes()
	return server
}

// requestLoggerConfig picks the request log format. Debug mode gets
// the verbose human-readable line, otherwise the echo default.
func requestLoggerConfig(debug bool) middleware.LoggerConfig {
	cfg := middleware.DefaultLoggerConfig
	if debug {
		cfg.Format = "${time_rfc3339} ${method} ${uri} ${status} ${latency_human} ${error}\n"
	}
	return cfg
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.WithField("address", address).Info("Starting HTTP server")
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router, used by handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// setupRoutes configures the server routes
func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", s.healthCheck)

	// API routes
	api := s.echo.Group("/api/v1")
	{
		reports := api.Group("/reports")
		{
			reports.POST("", s.generateReport)
			reports.GET("/templates", s.listTemplates)
			reports.GET("/:id/download", s.downloadReport)
		}

		metrics := api.Group("/metrics")
		{
			metrics.POST("/reports", s.generateMetricsReport)
			metrics.GET("/sample", s.sampleMetrics)
		}
	}
}

// ReportResponse is returned by the generation endpoints.
type ReportResponse struct {
	ReportID   string  `json:"report_id"`
	Status     string  `json:"status"`
	URL        string  `json:"url"`
	Filename   string  `json:"filename"`
	ElapsedSec float64 `json:"generation_time_seconds"`
}

// TemplateInfo describes one catalog entry in template listings.
type TemplateInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Engine      string `json:"engine"`
	Exists      bool   `json:"exists"`
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"version":   s.version,
		"service":   "rinna-report-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// generateReport handles report generation
func (s *Server) generateReport(c echo.Context) error {
	var req report.Request
	if err := c.Bind(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind report request")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request format",
		})
	}

	if req.TemplateID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "template_id is required",
		})
	}

	req.Save = true
	result, err := s.service.Generate(c.Request().Context(), req)
	if err != nil {
		return s.generationError(c, err)
	}

	if !result.Succeeded() {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": result.Error,
		})
	}

	return c.JSON(http.StatusOK, reportResponse(result))
}

// generateMetricsReport handles metrics report generation
func (s *Server) generateMetricsReport(c echo.Context) error {
	var req report.MetricsRequest
	if err := c.Bind(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind metrics report request")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request format",
		})
	}

	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "title is required",
		})
	}

	req.Save = true
	result, err := s.service.GenerateMetrics(c.Request().Context(), req)
	if err != nil {
		return s.generationError(c, err)
	}

	if !result.Succeeded() {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": result.Error,
		})
	}

	return c.JSON(http.StatusOK, reportResponse(result))
}

// downloadReport streams a generated report file
func (s *Server) downloadReport(c echo.Context) error {
	reportID := c.Param("id")

	record, err := s.service.Record(c.Request().Context(), reportID)
	if err != nil {
		if errors.Is(err, report.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Report not found",
			})
		}
		s.logger.WithError(err).Error("Failed to look up report record")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to look up report",
		})
	}

	if !record.HasFile() {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Report file not found",
		})
	}

	body, err := s.service.Open(c.Request().Context(), record)
	if err != nil {
		s.logger.WithError(err).WithField("file_key", record.FileKey).Error("Failed to open report file")
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Report file not found",
		})
	}
	defer body.Close()

	filename := path.Base(record.FileKey)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Stream(http.StatusOK, report.Format(record.Format).MIMEType(), body)
}

// listTemplates handles listing available templates
func (s *Server) listTemplates(c echo.Context) error {
	templates := s.service.Templates().List()

	infos := make([]TemplateInfo, 0, len(templates))
	for _, tmpl := range templates {
		infos = append(infos, TemplateInfo{
			ID:          tmpl.ID,
			Title:       tmpl.Title,
			Description: tmpl.Description,
			Engine:      string(tmpl.Engine),
			Exists:      tmpl.Exists(),
		})
	}

	return c.JSON(http.StatusOK, infos)
}

// sampleMetrics returns the fixed sample metrics payload
func (s *Server) sampleMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, report.SampleMetricsData())
}

// generationError maps request-level generation failures to responses.
// Unknown templates and formats are client errors; an unavailable
// engine with no fallback means the capability is not implemented on
// this host.
func (s *Server) generationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, report.ErrTemplateNotFound):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	case errors.Is(err, report.ErrUnknownEngine):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	case errors.Is(err, report.ErrUnsupportedFormat):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	case errors.Is(err, report.ErrEngineUnavailable):
		return c.JSON(http.StatusNotImplemented, map[string]string{
			"error": err.Error(),
		})
	default:
		s.logger.WithError(err).Error("Failed to generate report")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate report",
		})
	}
}

func reportResponse(result *report.Result) ReportResponse {
	return ReportResponse{
		ReportID:   result.ReportID,
		Status:     result.Status,
		URL:        "/api/v1/reports/" + result.ReportID + "/download",
		Filename:   result.Filename,
		ElapsedSec: result.ElapsedSec,
	}
}
