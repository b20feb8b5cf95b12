package report

import (
	"context"
	"sort"
	"time"
)

// DefaultMetricsAuthor is used when a metrics request names no author.
const DefaultMetricsAuthor = "Rinna System"

// MetricsRequest describes a metrics report. The raw metrics map is
// reshaped into titled sections before rendering.
type MetricsRequest struct {
	Title      string                 `json:"title"`
	Metrics    map[string]interface{} `json:"metrics_data"`
	TemplateID string                 `json:"template_id,omitempty"`
	Format     Format                 `json:"format,omitempty"`
	Engine     Engine                 `json:"engine,omitempty"`
	Filename   string                 `json:"filename,omitempty"`
	Author     string                 `json:"author,omitempty"`
	Save       bool                   `json:"-"`
}

// GenerateMetrics reshapes metrics data into the standard section layout
// and generates a report from it. A "summary" key becomes the leading
// section; every other top-level key becomes a section of its own, in
// alphabetical order.
func (s *Service) GenerateMetrics(ctx context.Context, req MetricsRequest) (*Result, error) {
	now := time.Now()

	sections := make([]map[string]interface{}, 0, len(req.Metrics))
	if summary, ok := req.Metrics["summary"].(map[string]interface{}); ok {
		sections = append(sections, map[string]interface{}{
			"title":       "Summary",
			"description": "Key metrics overview",
			"metrics":     summaryMetrics(summary),
		})
	}

	names := make([]string, 0, len(req.Metrics))
	for name := range req.Metrics {
		if name != "summary" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		sections = append(sections, map[string]interface{}{
			"title":   titleCase(name),
			"metrics": sectionMetrics(req.Metrics[name]),
		})
	}

	author := req.Author
	if author == "" {
		author = DefaultMetricsAuthor
	}
	templateID := req.TemplateID
	if templateID == "" {
		templateID = MetricsTemplateID
	}

	data := map[string]interface{}{
		"title":     req.Title,
		"subtitle":  "Generated on " + now.Format("2006-01-02 at 15:04:05"),
		"author":    author,
		"timestamp": now.Format(time.RFC3339),
		"sections":  sections,
	}

	return s.Generate(ctx, Request{
		TemplateID: templateID,
		Data:       data,
		Format:     req.Format,
		Engine:     req.Engine,
		Filename:   req.Filename,
		Save:       req.Save,
	})
}

// summaryMetrics keeps summary keys verbatim. They are already
// display names in the inputs we receive.
func summaryMetrics(summary map[string]interface{}) []map[string]interface{} {
	keys := make([]string, 0, len(summary))
	for key := range summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	metrics := make([]map[string]interface{}, 0, len(keys))
	for _, key := range keys {
		metrics = append(metrics, map[string]interface{}{
			"name":        key,
			"value":       summary[key],
			"description": "",
		})
	}
	return metrics
}

// sectionMetrics turns a section value into metric rows. Maps become
// one row per key with the name title-cased; lists pass through items
// that already carry name and value. Anything else yields no rows.
func sectionMetrics(value interface{}) []map[string]interface{} {
	metrics := []map[string]interface{}{}
	switch section := value.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(section))
		for key := range section {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			metrics = append(metrics, map[string]interface{}{
				"name":        titleCase(key),
				"value":       section[key],
				"description": "",
			})
		}
	case []interface{}:
		for _, item := range section {
			row, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if _, ok := row["name"]; !ok {
				continue
			}
			if _, ok := row["value"]; !ok {
				continue
			}
			metrics = append(metrics, row)
		}
	}
	return metrics
}

// SampleMetricsData returns a fixed metrics payload used by the sample
// endpoint and in tests.
func SampleMetricsData() map[string]interface{} {
	return map[string]interface{}{
		"summary": map[string]interface{}{
			"Total Work Items":        127,
			"Completed Items":         89,
			"In Progress":             32,
			"Blocked":                 6,
			"Average Completion Time": "3.2 days",
		},
		"workflow_metrics": map[string]interface{}{
			"workflow_efficiency":        0.87,
			"average_transition_time":    1.2,
			"blocked_percentage":         0.047,
			"first_time_completion_rate": 0.92,
		},
		"priority_distribution": map[string]interface{}{
			"high":   18,
			"medium": 65,
			"low":    44,
		},
		"team_performance": []interface{}{
			map[string]interface{}{
				"name":        "Team Alpha",
				"value":       94,
				"description": "Completion percentage",
			},
			map[string]interface{}{
				"name":        "Team Beta",
				"value":       87,
				"description": "Completion percentage",
			},
			map[string]interface{}{
				"name":        "Team Gamma",
				"value":       91,
				"description": "Completion percentage",
			},
		},
		"monthly_trend": map[string]interface{}{
			"january":  42,
			"february": 38,
			"march":    47,
		},
	}
}
