package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// CatalogFileName is the template catalog file looked up in the
// templates directory.
const CatalogFileName = "catalog.yaml"

// MetricsTemplateID is the built-in template used for metrics
// reports when the catalog does not define one.
const MetricsTemplateID = "metrics_default"

// Template describes a report template: a named document skeleton
// plus the engine used to render it.
type Template struct {
	ID          string                 `yaml:"id" json:"id"`
	Path        string                 `yaml:"path" json:"-"`
	Title       string                 `yaml:"title" json:"title"`
	Description string                 `yaml:"description" json:"description"`
	Engine      Engine                 `yaml:"engine" json:"engine"`
	Metadata    map[string]interface{} `yaml:"metadata,omitempty" json:"-"`
}

// Exists reports whether the template file is present on disk.
// Templates with an empty path render through a built-in layout and
// always exist.
func (t *Template) Exists() bool {
	if t.Path == "" {
		return true
	}
	_, err := os.Stat(t.Path)
	return err == nil
}

// catalog mirrors the on-disk catalog file.
type catalog struct {
	Templates []Template `yaml:"templates"`
}

// TemplateManager loads the template catalog once at construction
// and serves lookups from memory. Templates are immutable afterwards
// except through Add.
type TemplateManager struct {
	dir    string
	logger *logrus.Logger

	mu        sync.RWMutex
	templates map[string]*Template
	order     []string
}

// NewTemplateManager creates a manager for the given templates
// directory. A missing catalog file yields an empty manager; a
// malformed one is an error. The built-in metrics template is seeded
// when the catalog does not provide it.
func NewTemplateManager(dir string, logger *logrus.Logger) (*TemplateManager, error) {
	m := &TemplateManager{
		dir:       dir,
		logger:    logger,
		templates: make(map[string]*Template),
	}

	if err := m.loadCatalog(); err != nil {
		return nil, err
	}

	if _, ok := m.templates[MetricsTemplateID]; !ok {
		m.Add(Template{
			ID:          MetricsTemplateID,
			Title:       "Metrics Report",
			Description: "Standard metrics report layout",
			Engine:      EngineHTML,
		})
	}

	return m, nil
}

func (m *TemplateManager) loadCatalog() error {
	catalogPath := filepath.Join(m.dir, CatalogFileName)

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.WithField("path", catalogPath).Info("Template catalog not found")
			return nil
		}
		return fmt.Errorf("failed to read template catalog: %w", err)
	}

	var cat catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return fmt.Errorf("failed to parse template catalog: %w", err)
	}

	for _, tmpl := range cat.Templates {
		if tmpl.ID == "" {
			m.logger.Warn("Skipping catalog template without id")
			continue
		}
		if tmpl.Engine == "" {
			tmpl.Engine = EngineHTML
		} else if _, err := ParseEngine(string(tmpl.Engine)); err != nil {
			m.logger.WithFields(logrus.Fields{
				"template": tmpl.ID,
				"engine":   tmpl.Engine,
			}).Warn("Unknown engine in catalog, using html")
			tmpl.Engine = EngineHTML
		}
		if tmpl.Title == "" {
			tmpl.Title = tmpl.ID
		}
		if tmpl.Path != "" && !filepath.IsAbs(tmpl.Path) {
			tmpl.Path = filepath.Join(m.dir, tmpl.Path)
		}

		m.Add(tmpl)
	}

	m.logger.WithField("count", len(m.templates)).Info("Loaded template catalog")
	return nil
}

// Get returns the template for id, or nil when unknown.
func (m *TemplateManager) Get(id string) *Template {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.templates[id]
}

// List returns all templates in catalog order.
func (m *TemplateManager) List() []*Template {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Template, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.templates[id])
	}
	return out
}

// Add registers a template, replacing any existing one with the same
// id.
func (m *TemplateManager) Add(tmpl Template) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.templates[tmpl.ID]; !exists {
		m.order = append(m.order, tmpl.ID)
	}
	m.templates[tmpl.ID] = &tmpl
}
